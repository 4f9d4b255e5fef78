// Package logging establishes the process-wide logging sink and records
// run provenance.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Initialize points logrus at console plus a log file under
// dirPath/fileName and records the run arguments and the versions of
// the named Go modules. It reports whether the log file already
// existed, for append-vs-fresh semantics.
func Initialize(dirPath, fileName string, scriptArgs interface{}, logPackages string) (logFileExist bool, err error) {
	if dirPath != "" {
		if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
			return false, errors.Wrapf(err, "create log directory %v", dirPath)
		}
	}
	var logFilePath = filepath.Join(dirPath, fileName)
	if _, err := os.Stat(logFilePath); err == nil {
		logFileExist = true
	}

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return logFileExist, errors.Wrapf(err, "open log file %v", logFilePath)
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetOutput(io.MultiWriter(os.Stdout, f))

	log.Infof("Run ID: %v", uuid.NewString())
	log.Infof("Script arguments: %+v", scriptArgs)
	logPackageVersions(logPackages)

	return logFileExist, nil
}

// logPackageVersions resolves each comma-separated module name against
// the binary's build info, the Go analog of pip-package provenance.
func logPackageVersions(logPackages string) {
	var names []string
	for _, name := range strings.Split(logPackages, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		log.Warn("build info is not available, package versions not recorded")
		return
	}
	for _, name := range names {
		log.Infof("%v: %v", name, moduleVersion(info, name))
	}
}

func moduleVersion(info *debug.BuildInfo, name string) string {
	if info.Main.Path != "" && strings.Contains(info.Main.Path, name) {
		if info.Main.Version != "" {
			return info.Main.Version
		}
		return "(devel)"
	}
	for _, dep := range info.Deps {
		if strings.Contains(dep.Path, name) {
			return dep.Version
		}
	}
	return fmt.Sprintf("unknown (%v not in build info)", name)
}
