package table

// ToFloat64 converts a cell value to float64.
// Supports int, int8, int16, int32, int64, uint, uint8, uint16,
// uint32, uint64, float32, and float64. Other values yield 0.
func ToFloat64(v interface{}) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	case int64:
		return float64(f)
	case int:
		return float64(f)
	case int32:
		return float64(f)
	case int16:
		return float64(f)
	case int8:
		return float64(f)
	case uint:
		return float64(f)
	case uint64:
		return float64(f)
	case uint32:
		return float64(f)
	case uint16:
		return float64(f)
	case uint8:
		return float64(f)
	default:
		return 0
	}
}

// ToInt64 converts a cell value to int64 with the same conversion
// rules as ToFloat64.
func ToInt64(v interface{}) int64 {
	switch i := v.(type) {
	case int64:
		return i
	case int:
		return int64(i)
	case int32:
		return int64(i)
	case int16:
		return int64(i)
	case int8:
		return int64(i)
	case uint:
		return int64(i)
	case uint64:
		return int64(i)
	case uint32:
		return int64(i)
	case uint16:
		return int64(i)
	case uint8:
		return int64(i)
	case float64:
		return int64(i)
	case float32:
		return int64(i)
	default:
		return 0
	}
}
