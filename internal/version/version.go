package version

import (
	"fmt"
	"time"
)

// Заполняются линковщиком: -ldflags "-X gloomgrid-server/internal/version.BuildDate=...".
var (
	BuildDate   string // YYYY-MM-DD, UTC
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Начало отсчета номеров сборок проекта.
var buildEpoch = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

// BuildInfo - метаданные сборки; отдается эндпоинтом /version как JSON.
type BuildInfo struct {
	BuildID    int    `json:"buildId"`
	BuildDate  string `json:"buildDate"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

// CalculateBuildID считает номер сборки как число полных суток между
// эпохой и BuildDate. Счет через часы, чтобы не зависеть от сдвигов
// местного времени: обе даты в UTC.
func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает метаданные сборки. Ошибка расчета не выходит наружу,
// а попадает в поле Error: бинарь без вшитой даты тоже должен отвечать.
func Info() BuildInfo {
	info := BuildInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}

	info.BuildID = id
	info.Calculated = true
	return info
}

// String - однострочное представление для лога старта.
func String() string {
	info := Info()
	if !info.Calculated {
		return fmt.Sprintf("Build unknown (%s)", info.Error)
	}

	return fmt.Sprintf("Build %d (%s) commit[%s] branch[%s] ci[%s]",
		info.BuildID,
		info.BuildDate,
		orDefault(info.Commit, "unknown"),
		orDefault(info.Branch, "unknown"),
		orDefault(info.CI, "local"),
	)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
