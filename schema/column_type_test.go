package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func u8(v uint8) *uint8 { return &v }
func bp(v bool) *bool   { return &v }

func TestColumnTypeEqual(t *testing.T) {
	cases := []struct {
		name  string
		a, b  ColumnType
		equal bool
	}{
		{"integer same nil precision", Integer{}, Integer{}, true},
		{"integer differing precision", Integer{Precision: u8(2)}, Integer{Precision: u8(8)}, false},
		{"integer nil vs set precision", Integer{}, Integer{Precision: u8(8)}, false},
		{"varchar same length", Varchar{Length: 255}, Varchar{Length: 255}, true},
		{"varchar differing length", Varchar{Length: 255}, Varchar{Length: 100}, false},
		{"varchar vs char never equal", Varchar{Length: 10}, Char{Length: 10}, false},
		{"decimal same", Decimal{Precision: 10, Scale: 2}, Decimal{Precision: 10, Scale: 2}, true},
		{"decimal differing scale", Decimal{Precision: 10, Scale: 2}, Decimal{Precision: 10, Scale: 4}, false},
		{"text always equal", Text{}, Text{}, true},
		{"time tz nil vs false", Time{}, Time{WithTimeZone: bp(false)}, false},
		{"time tz both true", Time{WithTimeZone: bp(true)}, Time{WithTimeZone: bp(true)}, true},
		{"enum same name", Enum{Name: "status"}, Enum{Name: "status"}, true},
		{"enum differing name", Enum{Name: "status"}, Enum{Name: "role"}, false},
		{"json vs jsonb distinct variants", JSON{}, JSONB{}, false},
		{
			"dialect specific same kind and params",
			DialectSpecific{Kind: "citext", Params: []byte(`{}`)},
			DialectSpecific{Kind: "citext", Params: []byte(`{}`)},
			true,
		},
		{
			"dialect specific differing kind",
			DialectSpecific{Kind: "citext"},
			DialectSpecific{Kind: "hstore"},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, tc.a.Equal(tc.b))
			assert.Equal(t, tc.equal, tc.b.Equal(tc.a))
		})
	}
}
