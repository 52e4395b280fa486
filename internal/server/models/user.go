// Package models holds the server's persistent records.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// User is a stored account. PasswordHash is produced once by the password
// hasher at registration and is never the plaintext.
type User struct {
	ID           string
	Name         string
	UserName     string
	Email        string
	Address      Address
	Phone        string
	Website      string
	Company      Company
	PasswordHash []byte
	CreatedAt    time.Time
}

// Geo is a free-form coordinate pair.
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Address is stored as a JSON document next to the user row.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

// Company is stored as a JSON document next to the user row.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	Bs          string `json:"bs"`
}

var errInvalidJSONColumn = errors.New("invalid type for json column")

func (a Address) Value() (driver.Value, error) { return jsonValue(a) }
func (a *Address) Scan(value any) error        { return scanJSON(value, a) }

func (c Company) Value() (driver.Value, error) { return jsonValue(c) }
func (c *Company) Scan(value any) error        { return scanJSON(value, c) }

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// scanJSON decodes a json/jsonb column. NULL leaves dst at its zero value.
func scanJSON[T any](value any, dst *T) error {
	var zero T
	*dst = zero

	var b []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errInvalidJSONColumn
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}
