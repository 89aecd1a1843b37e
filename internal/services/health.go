package services

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type HealthSnapshot struct {
	CapturedAt        time.Time `json:"capturedAt"`
	Database          string    `json:"database"`
	SystemMemoryTotal int64     `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `json:"systemMemoryUsedBytes"`
	UploadDiskTotal   int64     `json:"uploadDiskTotalBytes"`
	UploadDiskUsed    int64     `json:"uploadDiskUsedBytes"`
}

// CaptureHealth pings the store and snapshots memory and upload-disk usage.
// It runs synchronously inside the request; there is no sampling loop.
func CaptureHealth(db *sqlx.DB, uploadDir string) (HealthSnapshot, error) {
	snapshot := HealthSnapshot{
		CapturedAt: time.Now().UTC(),
		Database:   "ok",
	}
	if err := db.Ping(); err != nil {
		snapshot.Database = "unreachable"
		return snapshot, ErrStore(err, "store ping")
	}
	memStat, _ := mem.VirtualMemory()
	if memStat != nil {
		snapshot.SystemMemoryTotal = int64(memStat.Total)
		snapshot.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	diskStat, err := disk.Usage(uploadDir)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	if diskStat != nil {
		snapshot.UploadDiskTotal = int64(diskStat.Total)
		snapshot.UploadDiskUsed = int64(diskStat.Used)
	}
	return snapshot, nil
}
