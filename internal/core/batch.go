package core

type Batch int

const (
	BatchStart Batch = iota
	BatchStop  Batch = iota
)

func (b Batch) String() string {
	switch b {
	case BatchStart:
		return "start"
	case BatchStop:
		return "stop"
	default:
		return "unknown"
	}
}
