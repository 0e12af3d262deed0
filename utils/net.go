package utils

import (
	"time"

	"github.com/beatwave/onair/common"
	"github.com/go-resty/resty/v2"
)

/*
DefineHTTPClient build the resty HTTP client used to reach the media transport
and aggregator services

	@param config common.HTTPClientConfig - client retry settings
	@returns new resty client
*/
func DefineHTTPClient(config common.HTTPClientConfig) (*resty.Client, error) {
	newClient := resty.New()

	// Retries back off between the initial and max wait times
	newClient = newClient.
		SetRetryCount(config.Retry.MaxAttempts).
		SetRetryWaitTime(time.Second * time.Duration(config.Retry.InitWaitTimeInSec)).
		SetRetryMaxWaitTime(time.Second * time.Duration(config.Retry.MaxWaitTimeInSec))

	return newClient, nil
}
