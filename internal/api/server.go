package api

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/vocabflash/internal/jobs"
	"github.com/vytor/vocabflash/internal/services"
)

// Pinger reports database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the learning engines over JSON. The engines keep
// per-learner state, so every engine call runs under mu.
type Server struct {
	DB       Pinger
	Words    services.WordService
	Study    services.SessionEngine
	Exams    services.ExamEngine
	Reports  services.ReportService
	Settings services.SettingsService
	Jobs     jobs.JobQueue

	mu       sync.Mutex
	validate *validator.Validate
}

func NewServer(
	db Pinger,
	words services.WordService,
	study services.SessionEngine,
	exams services.ExamEngine,
	reports services.ReportService,
	settings services.SettingsService,
	queue jobs.JobQueue,
) *Server {
	return &Server{
		DB:       db,
		Words:    words,
		Study:    study,
		Exams:    exams,
		Reports:  reports,
		Settings: settings,
		Jobs:     queue,
		validate: newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}
