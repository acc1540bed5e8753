package mongo

import (
	"reflect"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var tDecimal = reflect.TypeOf(decimal.Decimal{})

// NewRegistry returns the default BSON registry extended to store
// decimal.Decimal values as Decimal128.
func NewRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tDecimal, bsoncodec.ValueEncoderFunc(encodeDecimal))
	return reg
}

func encodeDecimal(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDecimal {
		return bsoncodec.ValueEncoderError{Name: "DecimalEncodeValue", Types: []reflect.Type{tDecimal}, Received: val}
	}
	d := val.Interface().(decimal.Decimal)
	dec, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return err
	}
	return vw.WriteDecimal128(dec)
}
