package domain

// TotalPages returns ceil(total/limit). A non-positive limit yields 0.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}
