package azureclient

// Copyright (c) Microsoft Corporation.
// Licensed under the Apache License 2.0.

import (
	"net/http"
	"time"

	"github.com/Azure/go-autorest/autorest"
	"github.com/sirupsen/logrus"

	utillog "github.com/miniad/rscluster/pkg/util/log"
)

// DecorateSenderWithLogging decorates a sender in order to intercept HTTP
// calls and log low level request information.
func DecorateSenderWithLogging(sender autorest.Sender) autorest.Sender {
	return autorest.DecorateSender(sender, loggingDecorator(), autorest.DoCloseIfError())
}

func loggingDecorator() autorest.SendDecorator {
	return func(s autorest.Sender) autorest.Sender {
		return autorest.SenderFunc(func(req *http.Request) (*http.Response, error) {
			requestTime := time.Now()

			resp, err := s.Do(req)

			fields := logrus.Fields{
				"request_method":        req.Method,
				"request_host":          req.URL.Host,
				"duration_milliseconds": time.Since(requestTime).Milliseconds(),
			}
			if resp != nil {
				fields["response_status_code"] = resp.StatusCode
			}
			utillog.GetLogger().WithFields(fields).Debug("outbound request")

			return resp, err
		})
	}
}
