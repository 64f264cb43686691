package goo

import "github.com/sirupsen/logrus"

// Logger is the package-level logger every exported operation writes its
// diagnostic output through: a single *logrus.Logger field set once at
// init, swappable by a caller who wants structured output routed somewhere
// other than stderr.
var Logger *logrus.Logger

func init() {
	Logger = logrus.StandardLogger()
}
