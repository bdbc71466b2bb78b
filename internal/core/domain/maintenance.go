package domain

// MaintenanceReport summarizes one database maintenance run. Sizes are in bytes.
type MaintenanceReport struct {
	SizeBefore int64
	SizeAfter  int64
	FullVacuum bool
	Reindexed  bool
}

// SpaceSaved is the number of bytes reclaimed; it is zero when the database grew.
func (r MaintenanceReport) SpaceSaved() int64 {
	if r.SizeAfter >= r.SizeBefore {
		return 0
	}
	return r.SizeBefore - r.SizeAfter
}
