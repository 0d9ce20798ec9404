package nats

import (
	"fmt"
)

func GetMatchLogSubject(prefix string, matchID string) string {
	if matchID == "" {
		matchID = "table"
	}
	return fmt.Sprintf("%s.%s.log", prefix, matchID)
}

func GetTableLogSubject(prefix string) string {
	return fmt.Sprintf("%s.*.log", prefix)
}
