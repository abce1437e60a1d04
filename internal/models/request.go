package models

// ReconstructRequest carries one physical statistics record to reconstruct.
// MinValue and MaxValue are base64 in JSON; omit them when the writer did not
// record a bound.
type ReconstructRequest struct {
	ByteWidth     int    `json:"byte_width"`
	MinValue      []byte `json:"min_value,omitempty"`
	MaxValue      []byte `json:"max_value,omitempty"`
	NullCount     *int64 `json:"null_count,omitempty"`
	DistinctCount *int64 `json:"distinct_count,omitempty"`
	DataType      string `json:"data_type"`
	// Padding overrides the server's decimal padding: "zero" or "sign"
	Padding string `json:"padding,omitempty"`
}
