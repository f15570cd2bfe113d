package version

import "fmt"

// Заполняются через -ldflags "-X github.com/vladislavdragonenkov/burgershop/internal/version.version=...".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Info returns version information populated via -ldflags.
func Info() (v, c, d string) { return version, commit, date }

// GetVersion возвращает версию сборки.
func GetVersion() string { return version }

// String печатает версию для `burgershop version` и логов старта.
func String() string {
	return fmt.Sprintf("burgershop version=%s commit=%s date=%s", version, commit, date)
}
