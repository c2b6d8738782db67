package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"log"

	"github.com/speps/go-hashids/v2"
	"github.com/yacinecs/wallet-backend/utils"
)

// ID is an int64 user identifier that serializes as an opaque hashid so
// sequential database keys never leak through the API.
type ID int64

var (
	hd        = hashids.NewData()
	dbHash, _ = hashids.NewWithData(hd)
)

func init() {
	hd.MinLength = 32
	if c, err := utils.LoadConfig(utils.EnvPath); err == nil {
		hd.Salt = c.SigningKey
	} else {
		// Unsalted hashids still round-trip, they are just guessable.
		// Acceptable outside of a fully configured server process.
		log.Printf("Warning: could not load config for ID hashing: %v", err)
	}
	var err error
	dbHash, err = hashids.NewWithData(hd)
	if err != nil {
		panic(err)
	}
}

// MarshalJSON implements the encoding json interface.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == 0 {
		return json.Marshal(nil)
	}
	result, err := dbHash.EncodeInt64([]int64{int64(id)})
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// UnmarshalJSON implements the encoding json interface.
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*id = 0
		return nil
	}
	result, err := dbHash.DecodeInt64WithError(s)
	if err != nil {
		return err
	}
	if len(result) == 0 {
		return errors.New("invalid ID")
	}
	*id = ID(result[0])
	return nil
}

// Scan implements the Scanner interface.
func (id *ID) Scan(value interface{}) error {
	if value == nil {
		*id = 0
		return nil
	}

	switch v := value.(type) {
	case int64:
		*id = ID(v)
	case []byte:
		return id.UnmarshalJSON(v)
	default:
		return errors.New("unexpected type for ID")
	}
	return nil
}

// Value implements the driver Valuer interface.
func (id ID) Value() (driver.Value, error) {
	return int64(id), nil
}
