package tarantool

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/tarantool/go-datastore/kvquery"
)

// txnFunc is the config storage function key-value queries are sent to.
const txnFunc = "config.storage.txn"

var (
	// ErrUnknownOperation is returned when the operation cannot be sent to the config storage.
	ErrUnknownOperation = errors.New("unknown operation")
	// ErrUnknownOperator is returned when the predicate comparison is unknown.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrUnknownTarget is returned when the predicate target is unknown.
	ErrUnknownTarget = errors.New("unknown target")

	_ msgpack.CustomEncoder = txnOperation{}           //nolint:exhaustruct
	_ msgpack.CustomEncoder = txnPredicate{}           //nolint:exhaustruct
	_ msgpack.CustomDecoder = &txnResponseDataSingle{} //nolint:exhaustruct

	//nolint: gochecknoglobals
	txnOps = map[kvquery.OpType]string{
		kvquery.OpGet:    "get",
		kvquery.OpPut:    "put",
		kvquery.OpDelete: "delete",
	}

	//nolint: gochecknoglobals
	txnOperators = map[kvquery.Compare]string{
		kvquery.CompareEqual:    "==",
		kvquery.CompareNotEqual: "!=",
		kvquery.CompareGreater:  ">",
		kvquery.CompareLess:     "<",
	}

	//nolint: gochecknoglobals
	txnTargets = map[kvquery.Target]string{
		kvquery.TargetValue:   "value",
		kvquery.TargetVersion: "mod_revision",
	}
)

// EncodingError represents an error that occurs while encoding a key-value query.
type EncodingError struct {
	ObjectType string
	Text       string
	Err        error
}

// Error returns the error message.
func (e EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %s, %s: %s", e.ObjectType, e.Text, e.Err)
}

func (e EncodingError) Unwrap() error {
	return e.Err
}

// DecodingError represents an error that occurs while decoding a response.
type DecodingError struct {
	ObjectType string
	Text       string
	Err        error
}

// Error returns the error message.
func (e DecodingError) Error() string {
	return fmt.Sprintf("failed to decode %s, %s: %s", e.ObjectType, e.Text, e.Err)
}

func (e DecodingError) Unwrap() error {
	return e.Err
}

const (
	// putOperationArrayLen is the length of the array a put operation is encoded with.
	putOperationArrayLen = 3
	// otherOperationArrayLen is the length of the array other operations are encoded with.
	otherOperationArrayLen = 2
	// predicateArrayLen is the length of the array a predicate is encoded with.
	predicateArrayLen = 4
)

type txnOperation struct {
	kvquery.Operation
}

func newTxnOperations(operations []kvquery.Operation) []txnOperation {
	out := make([]txnOperation, 0, len(operations))
	for _, o := range operations {
		out = append(out, txnOperation{o})
	}

	return out
}

func (o txnOperation) EncodeMsgpack(encoder *msgpack.Encoder) error {
	op, ok := txnOps[o.Type] //nolint:varnamelen
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOperation, o.Type)
	}

	length := otherOperationArrayLen
	if o.Type == kvquery.OpPut {
		length = putOperationArrayLen
	}

	if err := encoder.EncodeArrayLen(length); err != nil {
		return EncodingError{ObjectType: "operation", Text: "encode array length", Err: err}
	}

	if err := encoder.EncodeString(op); err != nil {
		return EncodingError{ObjectType: "operation", Text: "encode type", Err: err}
	}

	if err := encoder.EncodeString(string(o.Key)); err != nil {
		return EncodingError{ObjectType: "operation", Text: "encode key", Err: err}
	}

	if o.Type == kvquery.OpPut {
		if err := encoder.EncodeString(string(o.Value)); err != nil {
			return EncodingError{ObjectType: "operation", Text: "encode value", Err: err}
		}
	}

	return nil
}

type txnPredicate struct {
	kvquery.Predicate
}

func newTxnPredicates(predicates []kvquery.Predicate) []txnPredicate {
	out := make([]txnPredicate, 0, len(predicates))
	for _, p := range predicates {
		out = append(out, txnPredicate{p})
	}

	return out
}

func (p txnPredicate) EncodeMsgpack(encoder *msgpack.Encoder) error {
	op, ok := txnOperators[p.Compare] //nolint:varnamelen
	if !ok {
		return ErrUnknownOperator
	}

	target, ok := txnTargets[p.Target]
	if !ok {
		return ErrUnknownTarget
	}

	if err := encoder.EncodeArrayLen(predicateArrayLen); err != nil {
		return EncodingError{ObjectType: "predicate", Text: "encode array length", Err: err}
	}

	if err := encoder.EncodeString(target); err != nil {
		return EncodingError{ObjectType: "predicate", Text: "encode target", Err: err}
	}

	if err := encoder.EncodeString(op); err != nil {
		return EncodingError{ObjectType: "predicate", Text: "encode operator", Err: err}
	}

	value := p.Value
	if raw, ok := value.([]byte); ok {
		value = string(raw)
	}

	if err := encoder.Encode(value); err != nil {
		return EncodingError{ObjectType: "predicate", Text: "encode value", Err: err}
	}

	if err := encoder.EncodeString(string(p.Key)); err != nil {
		return EncodingError{ObjectType: "predicate", Text: "encode key", Err: err}
	}

	return nil
}

type txnRequest struct {
	_msgpack struct{} `msgpack:",omitempty"`

	Predicates []txnPredicate `msgpack:"predicates"`
	OnSuccess  []txnOperation `msgpack:"on_success"`
	OnFailure  []txnOperation `msgpack:"on_failure"`
}

func newTxnRequest(query kvquery.Query) txnRequest {
	return txnRequest{
		_msgpack:   struct{}{},
		Predicates: newTxnPredicates(query.If),
		OnSuccess:  newTxnOperations(query.Then),
		OnFailure:  newTxnOperations(query.Else),
	}
}

type txnResponseDataSingle struct {
	Response []struct {
		Path        []byte `msgpack:"path"`
		ModRevision int64  `msgpack:"mod_revision"`
		Value       []byte `msgpack:"value"`
	}
}

func (t *txnResponseDataSingle) DecodeMsgpack(decoder *msgpack.Decoder) error {
	if err := decoder.Decode(&t.Response); err != nil {
		return DecodingError{ObjectType: "txn response", Text: "decode response", Err: err}
	}

	return nil
}

type txnResponseData struct {
	IsSuccess bool                    `msgpack:"is_success"`
	Responses []txnResponseDataSingle `msgpack:"responses"`
}

type txnResponse struct {
	Data     txnResponseData `msgpack:"data"`
	Revision int64           `msgpack:"revision"`
}

func (r txnResponse) asResponse() kvquery.Response {
	results := make([][]kvquery.KeyValue, 0, len(r.Data.Responses))

	for _, val := range r.Data.Responses {
		keyValues := make([]kvquery.KeyValue, 0, len(val.Response))

		for _, resp := range val.Response {
			modRevision := resp.ModRevision
			if modRevision == 0 && r.Revision != 0 {
				modRevision = r.Revision
			}

			keyValues = append(keyValues, kvquery.KeyValue{
				Key:         resp.Path,
				Value:       resp.Value,
				ModRevision: modRevision,
			})
		}

		results = append(results, keyValues)
	}

	return kvquery.Response{
		Succeeded: r.Data.IsSuccess,
		Results:   results,
		Revision:  r.Revision,
	}
}
