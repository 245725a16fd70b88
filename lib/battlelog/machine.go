package battlelog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// WriteMachineLog marshals log as indented JSON to path.
func WriteMachineLog(path string, log MachineLog) error {
	caller := getCaller()
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		logrus.WithFields(logrus.Fields{"caller": caller, "error": err.Error()}).Error("failed to marshal machine log")
		return fmt.Errorf("failed to marshal machine log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logrus.WithFields(logrus.Fields{"caller": caller, "path": path, "error": err.Error()}).Error("failed to write machine log")
		return fmt.Errorf("failed to write machine log %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{"caller": caller, "path": path, "entries": len(log.Entries)}).Info("machine log written")
	return nil
}

// ReadMachineLog unmarshals a previously written machine log.
func ReadMachineLog(path string) (MachineLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MachineLog{}, fmt.Errorf("failed to read machine log %s: %w", path, err)
	}
	var log MachineLog
	if err := json.Unmarshal(data, &log); err != nil {
		return MachineLog{}, fmt.Errorf("failed to parse machine log %s: %w", path, err)
	}
	return log, nil
}
