package sqlstorage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/russross/meddler"
)

var registerOnce sync.Once

func initMeddler() {
	registerOnce.Do(func() {
		meddler.Register("hash", HashMeddler{})
		meddler.Register("hexBytes", HexBytesMeddler{})
		meddler.Register("timeRFC3339", TimeRFC3339Meddler{})
	})
}

// HashMeddler encodes or decodes the field value to or from string
type HashMeddler struct{}

// PreRead is called before a Scan operation for fields that have the HashMeddler
func (m HashMeddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	// give a pointer to a byte buffer to grab the raw data
	return new(string), nil
}

// PostRead is called after a Scan operation for fields that have the HashMeddler
func (m HashMeddler) PostRead(fieldPtr, scanTarget interface{}) error {
	ptr, ok := scanTarget.(*string)
	if !ok {
		return errors.New("scanTarget is not *string")
	}
	if ptr == nil {
		return fmt.Errorf("HashMeddler.PostRead: nil pointer")
	}
	field, ok := fieldPtr.(*common.Hash)
	if !ok {
		return errors.New("fieldPtr is not common.Hash")
	}
	*field = common.HexToHash(*ptr)
	return nil
}

// PreWrite is called before an Insert or Update operation for fields that have the HashMeddler
func (m HashMeddler) PreWrite(fieldPtr interface{}) (saveValue interface{}, err error) {
	field, ok := fieldPtr.(common.Hash)
	if !ok {
		return nil, errors.New("fieldPtr is not common.Hash")
	}
	return field.Hex(), nil
}

// HexBytesMeddler stores byte slices as 0x prefixed hex strings, NULL for empty
type HexBytesMeddler struct{}

// PreRead is called before a Scan operation for fields that have the HexBytesMeddler
func (m HexBytesMeddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	return new(sql.NullString), nil
}

// PostRead is called after a Scan operation for fields that have the HexBytesMeddler
func (m HexBytesMeddler) PostRead(fieldPtr, scanTarget interface{}) error {
	nullStr, ok := scanTarget.(*sql.NullString)
	if !ok {
		return errors.New("scanTarget is not *sql.NullString")
	}
	field, ok := fieldPtr.(*hexutil.Bytes)
	if !ok {
		return errors.New("fieldPtr is not *hexutil.Bytes")
	}
	if !nullStr.Valid || nullStr.String == "" {
		*field = nil
		return nil
	}
	decoded, err := hexutil.Decode(nullStr.String)
	if err != nil {
		return fmt.Errorf("failed to decode hex column: %w", err)
	}
	*field = decoded
	return nil
}

// PreWrite is called before an Insert or Update operation for fields that have the HexBytesMeddler
func (m HexBytesMeddler) PreWrite(fieldPtr interface{}) (saveValue interface{}, err error) {
	field, ok := fieldPtr.(hexutil.Bytes)
	if !ok {
		return nil, errors.New("fieldPtr is not hexutil.Bytes")
	}
	return field.String(), nil
}

// TimeRFC3339Meddler encodes or decodes time.Time to/from a consistent RFC3339 format for the database.
type TimeRFC3339Meddler struct{}

// PreRead is called before a Scan operation for fields that have the TimeRFC3339Meddler.
func (m TimeRFC3339Meddler) PreRead(fieldAddr interface{}) (scanTarget interface{}, err error) {
	// postgres hands back timestamps as time.Time, sqlite as text
	return new(interface{}), nil
}

// PostRead is called after a Scan operation for fields that have the TimeRFC3339Meddler.
func (m TimeRFC3339Meddler) PostRead(fieldPtr, scanTarget interface{}) error {
	raw, ok := scanTarget.(*interface{})
	if !ok {
		return errors.New("scanTarget is not *interface{}")
	}
	field, ok := fieldPtr.(*time.Time)
	if !ok {
		return errors.New("fieldPtr is not *time.Time")
	}

	switch v := (*raw).(type) {
	case nil:
		*field = time.Time{}
	case time.Time:
		*field = v
	case string:
		return parseRFC3339(field, v)
	case []byte:
		return parseRFC3339(field, string(v))
	default:
		return fmt.Errorf("unexpected time column type %T", v)
	}
	return nil
}

func parseRFC3339(field *time.Time, value string) error {
	if value == "" {
		*field = time.Time{}
		return nil
	}
	parsedTime, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("failed to parse time in RFC3339 format: %w", err)
	}
	*field = parsedTime
	return nil
}

// PreWrite is called before an Insert or Update operation for fields that have the TimeRFC3339Meddler.
func (m TimeRFC3339Meddler) PreWrite(fieldPtr interface{}) (saveValue interface{}, err error) {
	field, ok := fieldPtr.(time.Time)
	if !ok {
		return nil, errors.New("fieldPtr is not time.Time")
	}

	if field.IsZero() {
		return nil, nil
	}

	return field.UTC().Truncate(time.Second).Format(time.RFC3339), nil
}
