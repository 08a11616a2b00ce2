package main

import "time"

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func formatTimestamp(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.Local().Format("2006-01-02 15:04")
}
