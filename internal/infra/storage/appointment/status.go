package appointment

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// В таблице встречаются старые значения статуса (programada/cancelada/atendida),
// разный регистр, пробелы и NULL. Приводим их к каноническим значениям только здесь.
var statusAliases = map[domain.AppointmentStatus][]string{
	domain.StatusScheduled: {"scheduled", "programada"},
	domain.StatusAttended:  {"attended", "atendida"},
	domain.StatusCancelled: {"cancelled", "cancelada"},
}

// normalizeStatus переводит значение из БД в доменный статус
// NULL, пустая строка и неизвестные значения считаются scheduled (запись занимает время)
func normalizeStatus(raw sql.NullString) domain.AppointmentStatus {
	if !raw.Valid {
		return domain.StatusScheduled
	}

	value := strings.ToLower(strings.TrimSpace(raw.String))
	for status, aliases := range statusAliases {
		for _, alias := range aliases {
			if value == alias {
				return status
			}
		}
	}

	return domain.StatusScheduled
}

// aliasesOf все варианты написания статуса в БД
func aliasesOf(status domain.AppointmentStatus) []string {
	return statusAliases[status]
}

// statusExpr нормализованный статус в SQL, prefix - алиас таблицы ("a") или пустая строка
func statusExpr(prefix string) string {
	column := "status"
	if prefix != "" {
		column = prefix + ".status"
	}
	return fmt.Sprintf("COALESCE(NULLIF(LOWER(TRIM(%s)), ''), '%s')", column, domain.StatusScheduled)
}

// statusIs условие "нормализованный статус равен status"
// scheduled задается через исключение остальных статусов, чтобы совпадать с normalizeStatus
// на неизвестных значениях
func statusIs(prefix string, status domain.AppointmentStatus) squirrel.Sqlizer {
	if status == domain.StatusScheduled {
		others := make([]string, 0)
		others = append(others, aliasesOf(domain.StatusAttended)...)
		others = append(others, aliasesOf(domain.StatusCancelled)...)
		return squirrel.Expr(statusExpr(prefix)+" <> ALL(?)", pq.Array(others))
	}
	return squirrel.Expr(statusExpr(prefix)+" = ANY(?)", pq.Array(aliasesOf(status)))
}
