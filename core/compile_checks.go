package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ AssignmentService = (*Engine)(nil)
	_ CredentialReader  = (*Engine)(nil)
	_ FeedSource        = (*Engine)(nil)

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
