package uid

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
)

// ID is the unique identifier used by every persisted record.
type ID snowflake.ID

var idGen *snowflake.Node

func init() {
	snowflake.Epoch = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	var err error
	idGen, err = snowflake.NewNode(rand.Int63n(1024))
	if err != nil {
		panic(err)
	}
}

func New() ID {
	return ID(idGen.Generate())
}

func (u ID) String() string {
	return snowflake.ID(u).Base58()
}

func (u *ID) UnmarshalText(b []byte) error {
	id, err := snowflake.ParseBase58(b)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", string(b), err)
	}
	*u = ID(id)
	return nil
}

func (u ID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Parse converts a base58 encoded string into an ID.
func Parse(b []byte) (ID, error) {
	var id ID
	err := id.UnmarshalText(b)
	return id, err
}
