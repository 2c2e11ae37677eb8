package typecategory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brindlebyte/schemawright/schema"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		in   schema.ColumnType
		want Category
	}{
		{"integer", schema.Integer{}, Numeric},
		{"decimal", schema.Decimal{}, Numeric},
		{"varchar", schema.Varchar{}, String},
		{"text", schema.Text{}, String},
		{"timestamp", schema.Timestamp{}, DateTime},
		{"boolean", schema.Boolean{}, Boolean},
		{"uuid", schema.UUID{}, Uuid},
		{"json", schema.JSON{}, Json},
		{"jsonb", schema.JSONB{}, Json},
		{"blob", schema.Blob{}, Binary},
		{"enum", schema.Enum{Name: "status"}, Other},
		{"dialect specific", schema.DialectSpecific{Kind: "hstore"}, Other},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.in))
		})
	}
}

func TestConversionResult(t *testing.T) {
	cases := []struct {
		name     string
		from, to schema.ColumnType
		want     Result
	}{
		{"same category numeric", schema.Integer{}, schema.Decimal{}, SafeWithPrecisionCheck},
		{"same category string", schema.Varchar{Length: 255}, schema.Varchar{Length: 100}, SafeWithPrecisionCheck},
		{"numeric to string", schema.Integer{}, schema.Varchar{Length: 20}, Safe},
		{"string to numeric", schema.Text{}, schema.Integer{}, Warning},
		{"numeric to boolean", schema.Integer{}, schema.Boolean{}, Safe},
		{"boolean to numeric", schema.Boolean{}, schema.Integer{}, Safe},
		{"datetime to numeric is error", schema.Timestamp{}, schema.Integer{}, Error},
		{"json to numeric is error", schema.JSONB{}, schema.Integer{}, Error},
		{"blob to numeric is error", schema.Blob{}, schema.Integer{}, Error},
		{"blob to string is safe", schema.Blob{}, schema.Text{}, Safe},
		{"string to blob is warning", schema.Text{}, schema.Blob{}, Warning},
		{"other to numeric is error", schema.Enum{Name: "status"}, schema.Integer{}, Error},
		{"other to string is safe", schema.Enum{Name: "status"}, schema.Text{}, Safe},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ConversionResult(tc.from, tc.to))
		})
	}
}
