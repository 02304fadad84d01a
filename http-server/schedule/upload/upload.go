package upload

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"mrp-sched/internal/service/ingest"
	"mrp-sched/internal/storage"
)

type ScheduleStore interface {
	UpsertSchedule(ctx context.Context, counts []storage.ScheduleCount) error
}

type Resp struct {
	Cells int `json:"cells"`
}

// maxUploadBytes caps workbook uploads; the combined schedule is a few MB.
const maxUploadBytes = 32 << 20

// UploadSchedule ingests an assembly-schedule workbook (multipart field
// "file") and upserts the per-day build counts into the schedule table.
func UploadSchedule(log *slog.Logger, store ScheduleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.schedule.UploadSchedule"

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing workbook file", http.StatusBadRequest)
			return
		}
		defer file.Close()

		counts, err := ingest.ImportWorkbook(file, time.Now())
		if err != nil {
			log.Error("failed to import workbook",
				slog.String("op", op),
				slog.String("file", header.Filename),
				slog.String("error", err.Error()),
			)
			http.Error(w, "cannot read workbook", http.StatusUnprocessableEntity)
			return
		}

		if err := store.UpsertSchedule(r.Context(), counts); err != nil {
			log.Error("failed to upsert schedule", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		log.Info("schedule imported",
			slog.String("file", header.Filename),
			slog.Int("cells", len(counts)),
		)
		render.JSON(w, r, Resp{Cells: len(counts)})
	}
}
