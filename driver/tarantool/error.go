package tarantool

import (
	"errors"
	"strings"

	"github.com/tarantool/go-iproto"
	"github.com/tarantool/go-tarantool/v2"

	"github.com/tarantool/go-datastore/driver"
	"github.com/tarantool/go-datastore/kvquery"
)

func footprint(err error) driver.Footprint {
	var precondition *kvquery.PreconditionError
	if errors.As(err, &precondition) {
		return driver.NotUnique(precondition.Keys...)
	}

	var boxErr tarantool.Error
	if errors.As(err, &boxErr) && boxErr.Code == iproto.ER_TUPLE_FOUND {
		return notUnique(boxErr.Msg)
	}

	var boxErrPtr *tarantool.Error
	if errors.As(err, &boxErrPtr) && boxErrPtr != nil && boxErrPtr.Code == iproto.ER_TUPLE_FOUND {
		return notUnique(boxErrPtr.Msg)
	}

	return driver.Catchall()
}

// notUnique extracts the index name from a duplicate key message:
// Duplicate key exists in unique index "primary" in space "users" ...
func notUnique(msg string) driver.Footprint {
	const marker = `unique index "`

	start := strings.Index(msg, marker)
	if start < 0 {
		return driver.NotUnique()
	}

	rest := msg[start+len(marker):]

	end := strings.IndexByte(rest, '"')
	if end <= 0 {
		return driver.NotUnique()
	}

	return driver.NotUnique(rest[:end])
}
