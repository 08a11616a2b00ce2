package recording

import (
	"os"

	"gazecat/internal/recording/info"
)

// classificationRule ties one marker predicate to the format it proves.
type classificationRule struct {
	format Type
	match  func(dir string) (bool, error)
}

// classificationRules is evaluated top to bottom and the first match wins.
// The markers are not mutually exclusive (an old-style directory keeps its
// info.csv after the modern player rewrites it as info.player.json), so this
// order encodes precedence. Do not reorder.
var classificationRules = []classificationRule{
	{NewStyle, func(dir string) (bool, error) { return info.HasPlayerInfo(dir), nil }},
	{OldStyle, WasOpenedInLegacyPlayer},
	{Invisible, IsInvisibleRecording},
	{Mobile, IsMobileRecording},
}

// Classify validates path and determines which recording format the
// directory holds. Validation failures propagate unchanged. A directory
// without any recognized marker fails with *InvalidRecordingError; marker
// read faults other than absence are returned as-is.
func Classify(path string) (Type, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return "", err
	}
	if err := Validate(resolved); err != nil {
		return "", err
	}

	for _, rule := range classificationRules {
		matched, err := rule.match(resolved)
		if err != nil {
			return "", err
		}
		if matched {
			return rule.format, nil
		}
	}

	return "", &InvalidRecordingError{
		Reason: "there is no info file in the target directory",
	}
}

// WasOpenedInLegacyPlayer reports whether the legacy desktop player has
// already upgraded the directory: info.csv exists and carries a Data Format
// Version key. A missing info.csv simply means "no".
func WasOpenedInLegacyPlayer(dir string) (bool, error) {
	values, err := info.ReadLegacyInfo(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	_, ok := values[info.KeyDataFormatVersion]
	return ok, nil
}

// IsInvisibleRecording reports whether dir holds an Invisible companion app
// recording. Only the absence of info.json counts as "no"; a marker that
// exists but cannot be read or parsed is a fault and propagates, because an
// Invisible directory with a corrupt marker must not fall through to the
// mobile check.
func IsInvisibleRecording(dir string) (bool, error) {
	if _, err := info.ReadInvisibleInfo(dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsMobileRecording reports whether dir holds an untouched Pupil Mobile
// recording: info.csv names Pupil Mobile as capture software and no player
// has stamped a Data Format Version yet. Missing files or keys mean "no".
func IsMobileRecording(dir string) (bool, error) {
	values, err := info.ReadLegacyInfo(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if values[info.KeyCaptureSoftware] != info.CaptureSoftwareMobile {
		return false, nil
	}
	_, hasVersion := values[info.KeyDataFormatVersion]
	return !hasVersion, nil
}
