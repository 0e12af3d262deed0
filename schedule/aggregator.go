package schedule

import (
	"context"
	"fmt"
	"net/url"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/utils"
	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
)

// PerformerProfileResponse schedule aggregator profile look up response
type PerformerProfileResponse struct {
	goutils.RestAPIBaseResponse
	// Profile the resolved performer profile
	Profile common.PerformerProfile `json:"profile"`
}

// ProfileResolver resolve performer profiles from the third-party schedule aggregator
//
// Resolved profiles are cached. A cache failure falls through to the aggregator,
// it never fails the look up.
type ProfileResolver interface {
	/*
		ResolveProfile resolve one performer profile by booking email

			@param ctxt context.Context - execution context
			@param email string - booking email the aggregator keys profiles on
			@returns the performer profile
	*/
	ResolveProfile(ctxt context.Context, email string) (common.PerformerProfile, error)

	/*
		ResolveLineupProfiles attach resolved profiles to the DJ slots of a lineup

		Slots whose profiles cannot be resolved are passed through untouched.

			@param ctxt context.Context - execution context
			@param lineup []common.DJSlot - DJ slots carrying booking emails
			@returns the lineup with profiles filled in
	*/
	ResolveLineupProfiles(ctxt context.Context, lineup []common.DJSlot) []common.DJSlot
}

// restProfileResolverImpl implements ProfileResolver
type restProfileResolverImpl struct {
	goutils.Component
	aggregatorBaseURI *url.URL
	requestIDHeader   string
	client            *resty.Client
	cache             utils.ProfileCache
	cacheTTL          common.ProfileCacheConfig
}

/*
NewRestProfileResolver define a new schedule aggregator profile resolver based on REST

	@param ctxt context.Context - execution context
	@param config common.ScheduleAggregatorConfig - aggregator client config
	@param cache utils.ProfileCache - resolved profile cache
	@param httpClient *resty.Client - HTTP client to use
	@returns new resolver
*/
func NewRestProfileResolver(
	ctxt context.Context,
	config common.ScheduleAggregatorConfig,
	cache utils.ProfileCache,
	httpClient *resty.Client,
) (ProfileResolver, error) {
	baseURI, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, err
	}

	logTags := log.Fields{
		"module":    "schedule",
		"component": "aggregator-rest-client",
		"instance":  baseURI.String(),
	}

	instance := &restProfileResolverImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		aggregatorBaseURI: baseURI,
		requestIDHeader:   config.RequestIDHeader,
		client:            httpClient,
		cache:             cache,
		cacheTTL:          config.Cache,
	}

	return instance, nil
}

func (c *restProfileResolverImpl) ResolveProfile(
	ctxt context.Context, email string,
) (common.PerformerProfile, error) {
	logTags := c.GetLogTagsForContext(ctxt)

	if c.cache != nil {
		if cached, err := c.cache.GetProfile(ctxt, email); err == nil {
			return cached, nil
		}
	}

	reqID := ulid.Make().String()

	requestURL := c.aggregatorBaseURI.JoinPath("/v1/profile")
	resp, err := c.client.R().
		// Set request ID
		SetHeader(c.requestIDHeader, reqID).
		// Set query parameters
		SetQueryParam("email", email).
		// Set response payload
		SetResult(&PerformerProfileResponse{}).
		// Setup error parsing
		SetError(goutils.RestAPIBaseResponse{}).
		Get(requestURL.String())

	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("email", email).
			Error("Profile look up request failed on call")
		return common.PerformerProfile{}, err
	}

	if !resp.IsSuccess() {
		respError := resp.Error().(*goutils.RestAPIBaseResponse)
		var err error
		if respError.Error != nil {
			err = fmt.Errorf("%s", respError.Error.Detail)
		} else {
			err = fmt.Errorf("status code %d", resp.StatusCode())
		}
		log.
			WithError(err).
			WithFields(logTags).
			WithField("email", email).
			WithField("outbound-request-id", reqID).
			Error("Profile look up failed")
		return common.PerformerProfile{}, err
	}

	// Process the response
	profileResp, ok := resp.Result().(*PerformerProfileResponse)
	if !ok {
		rawResp := string(resp.Body())
		err := fmt.Errorf("failed to parse profile look up response")
		log.
			WithError(err).
			WithFields(logTags).
			WithField("email", email).
			WithField("outbound-request-id", reqID).
			WithField("response", rawResp).
			Error("Profile look up failed")
		return common.PerformerProfile{}, err
	}

	// Cache for the next look up. A cache write failure is not a look up failure.
	if c.cache != nil {
		if err := c.cache.CacheProfile(
			ctxt, email, profileResp.Profile, c.cacheTTL.EntryTTL(),
		); err != nil {
			log.
				WithError(err).
				WithFields(logTags).
				WithField("email", email).
				Warn("Unable to cache resolved profile")
		}
	}

	return profileResp.Profile, nil
}

func (c *restProfileResolverImpl) ResolveLineupProfiles(
	ctxt context.Context, lineup []common.DJSlot,
) []common.DJSlot {
	logTags := c.GetLogTagsForContext(ctxt)

	for idx, djSlot := range lineup {
		for pdx, performer := range djSlot.Performers {
			if performer.Email == nil {
				continue
			}
			resolved, err := c.ResolveProfile(ctxt, *performer.Email)
			if err != nil {
				log.
					WithError(err).
					WithFields(logTags).
					WithField("email", *performer.Email).
					Warn("DJ slot performer profile not resolved")
				continue
			}
			lineup[idx].Performers[pdx] = resolved
		}
	}

	return lineup
}
