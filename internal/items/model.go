package items

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	pkgvalidator "github.com/Development-Team-8/wishlists/internal/validator"
)

// DateLayout es el formato público de date_added: MM/DD/YYYY, HH:MM:SS.
const DateLayout = "01/02/2006, 15:04:05"

func init() {
	pkgvalidator.RegisterValidation("item_date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
}

// Item representa una entrada del catálogo.
// ItemID lo asigna el cliente y es la clave primaria en el store.
type Item struct {
	ItemID      int64     `json:"item_id" bson:"item_id"`
	ItemName    string    `json:"item_name" bson:"item_name"`
	Price       int64     `json:"price" bson:"price"`
	Discount    int64     `json:"discount" bson:"discount"`
	Description string    `json:"description" bson:"description"`
	DateAdded   Timestamp `json:"date_added" bson:"date_added"`
}

// SameSnapshot compara dos items por su contenido serializado.
func SameSnapshot(a, b Item) bool {
	left, errLeft := json.Marshal(a)
	right, errRight := json.Marshal(b)
	if errLeft != nil || errRight != nil {
		return false
	}
	return bytes.Equal(left, right)
}

// Timestamp es un time.Time que viaja en JSON con DateLayout
// y en Mongo como datetime nativo.
type Timestamp time.Time

// ParseDate interpreta un date_added en UTC.
func ParseDate(value string) (Timestamp, error) {
	parsed, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp(parsed), nil
}

// Time devuelve el valor como time.Time.
func (timestamp Timestamp) Time() time.Time {
	return time.Time(timestamp)
}

// String formatea con DateLayout.
func (timestamp Timestamp) String() string {
	return time.Time(timestamp).UTC().Format(DateLayout)
}

func (timestamp Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(timestamp.String())
}

func (timestamp *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*timestamp = parsed
	return nil
}

func (timestamp Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	// Mongo guarda milisegundos; truncamos a segundos que es lo que expone la API.
	return bson.MarshalValue(time.Time(timestamp).UTC().Truncate(time.Second))
}

func (timestamp *Timestamp) UnmarshalBSONValue(kind bsontype.Type, data []byte) error {
	value, ok := bson.RawValue{Type: kind, Value: data}.TimeOK()
	if !ok {
		return fmt.Errorf("date_added: expected datetime, got %s", kind)
	}
	*timestamp = Timestamp(value.UTC())
	return nil
}

// FlexInt acepta tanto 12 como "12".
// Los clientes de aceptación mandan las filas de las tablas como strings.
type FlexInt int64

func (value *FlexInt) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
	}
	parsed, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s", string(data))
	}
	*value = FlexInt(parsed)
	return nil
}

// ItemInput es el payload para crear un item (o un item embebido en una wishlist).
// Los punteros distinguen "no vino" de "vino en cero".
type ItemInput struct {
	ItemID      *FlexInt `json:"item_id" validate:"required"`
	ItemName    string   `json:"item_name" validate:"required"`
	Price       *FlexInt `json:"price" validate:"required"`
	Discount    *FlexInt `json:"discount" validate:"required,gte=0,lte=100"`
	Description *string  `json:"description" validate:"required"`
	DateAdded   string   `json:"date_added" validate:"required,item_date"`
}

// ToItem convierte un input ya validado en Item.
func (input ItemInput) ToItem() (Item, error) {
	if input.ItemID == nil || input.Price == nil || input.Discount == nil || input.Description == nil {
		return Item{}, fmt.Errorf("%w: missing required fields", ErrorInvalidInput)
	}
	dateAdded, err := ParseDate(input.DateAdded)
	if err != nil {
		return Item{}, fmt.Errorf("%w: date_added: %v", ErrorInvalidInput, err)
	}
	return Item{
		ItemID:      int64(*input.ItemID),
		ItemName:    strings.TrimSpace(input.ItemName),
		Price:       int64(*input.Price),
		Discount:    int64(*input.Discount),
		Description: *input.Description,
		DateAdded:   dateAdded,
	}, nil
}

// ParseID interpreta el id del path. Un id inválido no es error: es "no existe".
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
