package alpaca

// Response is the envelope common to every Alpaca reply. Typed value
// responses embed it so the JSON literal kind always matches the
// declared type of the property being read.
type Response struct {
	ClientTransactionID uint32 `json:"ClientTransactionID"`
	ServerTransactionID uint32 `json:"ServerTransactionID"`
	ErrorNumber         int    `json:"ErrorNumber"`
	ErrorMessage        string `json:"ErrorMessage"`
}

// StringResponse carries a string Value.
type StringResponse struct {
	Response
	Value string `json:"Value"`
}

// BoolResponse carries a boolean Value.
type BoolResponse struct {
	Response
	Value bool `json:"Value"`
}

// Int32Response carries an integer Value.
type Int32Response struct {
	Response
	Value int32 `json:"Value"`
}

// DoubleResponse carries a floating point Value.
type DoubleResponse struct {
	Response
	Value float64 `json:"Value"`
}

// StringListResponse carries a string array Value.
type StringListResponse struct {
	Response
	Value []string `json:"Value"`
}

// IntListResponse carries an integer array Value.
type IntListResponse struct {
	Response
	Value []int32 `json:"Value"`
}

// Txn identifies one handled request: the caller-supplied client IDs
// plus the server transaction ID assigned to it.
type Txn struct {
	ClientID            uint32
	ClientTransactionID uint32
	ServerTransactionID uint32
}

func (t Txn) envelope(errorNumber int, errorMessage string) Response {
	return Response{
		ClientTransactionID: t.ClientTransactionID,
		ServerTransactionID: t.ServerTransactionID,
		ErrorNumber:         errorNumber,
		ErrorMessage:        errorMessage,
	}
}

// OK builds a value-less success envelope.
func (t Txn) OK() Response {
	return t.envelope(ErrSuccess, "")
}

// Err builds a value-less error envelope from a DeviceError.
func (t Txn) Err(err *DeviceError) Response {
	return t.envelope(err.Number, err.Message)
}

// String builds a string success envelope.
func (t Txn) String(v string) StringResponse {
	return StringResponse{Response: t.OK(), Value: v}
}

// Bool builds a boolean success envelope.
func (t Txn) Bool(v bool) BoolResponse {
	return BoolResponse{Response: t.OK(), Value: v}
}

// Int builds an integer success envelope.
func (t Txn) Int(v int32) Int32Response {
	return Int32Response{Response: t.OK(), Value: v}
}

// Double builds a floating point success envelope.
func (t Txn) Double(v float64) DoubleResponse {
	return DoubleResponse{Response: t.OK(), Value: v}
}

// Strings builds a string array success envelope. A nil slice is
// replaced with an empty one so the JSON Value is [] rather than null.
func (t Txn) Strings(v []string) StringListResponse {
	if v == nil {
		v = []string{}
	}
	return StringListResponse{Response: t.OK(), Value: v}
}

// Ints builds an integer array success envelope.
func (t Txn) Ints(v []int32) IntListResponse {
	if v == nil {
		v = []int32{}
	}
	return IntListResponse{Response: t.OK(), Value: v}
}
