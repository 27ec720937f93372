package inventory

type RecordStatus string

const (
	RecordDispatched RecordStatus = "DISPATCHED"
	RecordReceived   RecordStatus = "RECEIVED"
)

func (s RecordStatus) String() string {
	return string(s)
}

func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordDispatched, RecordReceived:
		return true
	default:
		return false
	}
}
