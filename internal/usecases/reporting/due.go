package reporting

import (
	"fmt"
	"time"
	_ "time/tzdata" // fusos das assinaturas não dependem do sistema operacional

	"github.com/vfg2006/google-ads-insights-api/internal/domain"
)

const DefaultTolerance = 2 * time.Minute

const minutesPerDay = 24 * 60

// Intervalo mínimo desde o último envio para cada frequência
var minIntervals = map[domain.Frequency]time.Duration{
	domain.FrequencyDaily:   20 * time.Hour,
	domain.FrequencyWeekly:  156 * time.Hour, // 6,5 dias
	domain.FrequencyMonthly: 27 * 24 * time.Hour,
}

// Dias cobertos pelo resumo de cada frequência, terminando ontem
var windowDays = map[domain.Frequency]int{
	domain.FrequencyDaily:   1,
	domain.FrequencyWeekly:  7,
	domain.FrequencyMonthly: 30,
}

// IsDue indica se a assinatura deve ser enviada agora
func IsDue(sub *domain.InsightsSubscription, now time.Time, tolerance time.Duration) bool {
	if sub == nil || !sub.IsActive || sub.IsPaused {
		return false
	}

	interval, ok := minIntervals[sub.Frequency]
	if !ok {
		return false
	}

	sendMinutes, err := parseSendTime(sub.SendTime)
	if err != nil {
		return false
	}

	local := now.In(location(sub.TimeZone))
	localMinutes := local.Hour()*60 + local.Minute()

	diff := localMinutes - sendMinutes
	if diff < 0 {
		diff = -diff
	}
	// Janela circular: 23:59 e 00:00 estão a um minuto de distância
	if diff > minutesPerDay/2 {
		diff = minutesPerDay - diff
	}

	if time.Duration(diff)*time.Minute > tolerance {
		return false
	}

	if sub.LastSentAt == nil {
		return true
	}

	return now.Sub(*sub.LastSentAt) >= interval
}

// parseSendTime aceita HH:mm e HH:mm:ss e devolve os minutos desde a meia-noite
func parseSendTime(sendTime string) (int, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		parsed, err := time.Parse(layout, sendTime)
		if err == nil {
			return parsed.Hour()*60 + parsed.Minute(), nil
		}
	}
	return 0, fmt.Errorf("horário de envio inválido %q", sendTime)
}

// location cai para UTC quando o fuso da assinatura é desconhecido
func location(timeZone string) *time.Location {
	if timeZone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(timeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
