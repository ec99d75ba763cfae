package wishlists

import (
	"fmt"
	"slices"
)

// ResolveName devuelve proposed si nadie lo usa.
// Si está tomado, prueba "<proposed> 2", "<proposed> 3", ... y devuelve el primero libre.
// taken no debe incluir el nombre de la wishlist que se está renombrando.
func ResolveName(proposed string, taken []string) string {
	if !slices.Contains(taken, proposed) {
		return proposed
	}

	used := make(map[string]struct{}, len(taken))
	for _, name := range taken {
		used[name] = struct{}{}
	}

	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s %d", proposed, suffix)
		if _, ok := used[candidate]; !ok {
			return candidate
		}
	}
}
