// Package logging is the slog wrapper used across campuscore.
//
// Every line carries the service name and build version, plus whatever
// attributes the caller adds, so log output from the seeding step, the
// migration engine and the repositories can be correlated in one stream.
// Output format and level come from the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// JSON is the production format; text is easier on the eyes during
// development. Use Default() before configuration has been loaded, and
// With() to tag a subsystem:
//
//	log := logging.New(cfg.Logging, version)
//	maintLog := log.With("component", "maintenance")
//	maintLog.Info("request completed", "request_id", req.ID)
//
// Never log credentials. The one deliberate exception is the generated
// seed admin password, which is logged exactly once on first boot so the
// operator can sign in and change it.
package logging
