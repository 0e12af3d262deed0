package schedule_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/beatwave/onair/common"
	"github.com/beatwave/onair/mocks"
	"github.com/beatwave/onair/schedule"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func buildTestAggregatorConfig(baseURL string) common.ScheduleAggregatorConfig {
	return common.ScheduleAggregatorConfig{
		BaseURL:         baseURL,
		RequestIDHeader: "X-Request-ID",
		Cache: common.ProfileCacheConfig{
			RetentionCheckIntInSec: 60,
			EntryTTLInSec:          300,
		},
	}
}

func TestProfileResolverLookup(t *testing.T) {
	assert := assert.New(t)

	testClient := resty.New()
	httpmock.ActivateNonDefault(testClient.GetClient())
	defer httpmock.DeactivateAndReset()

	utCtxt := context.Background()

	testBaseURL := "http://aggregator.testing.dev"
	mockCache := mocks.NewProfileCache(t)

	uut, err := schedule.NewRestProfileResolver(
		utCtxt, buildTestAggregatorConfig(testBaseURL), mockCache, testClient,
	)
	assert.Nil(err)

	bio := "open format selector"
	testEmail := fmt.Sprintf("%s@testing.dev", uuid.NewString())
	testProfile := common.PerformerProfile{
		DJName: "dj-nova",
		Email:  &testEmail,
		Bio:    &bio,
	}

	// Case 0: cache miss, aggregator resolves, result cached
	httpmock.RegisterResponder(
		"GET",
		fmt.Sprintf("%s/v1/profile", testBaseURL),
		func(r *http.Request) (*http.Response, error) {
			assert.Equal(testEmail, r.URL.Query().Get("email"))
			assert.NotEmpty(r.Header.Get("X-Request-ID"))
			return httpmock.NewJsonResponse(
				http.StatusOK, schedule.PerformerProfileResponse{Profile: testProfile},
			)
		},
	)
	mockCache.On(
		"GetProfile", mock.Anything, testEmail,
	).Return(common.PerformerProfile{}, fmt.Errorf("cache miss")).Once()
	mockCache.On(
		"CacheProfile", mock.Anything, testEmail, testProfile, time.Second*300,
	).Return(nil).Once()
	{
		resolved, err := uut.ResolveProfile(utCtxt, testEmail)
		assert.Nil(err)
		assert.Equal(testProfile.DJName, resolved.DJName)
	}

	// Case 1: cache hit skips the aggregator
	mockCache.On("GetProfile", mock.Anything, testEmail).Return(testProfile, nil).Once()
	{
		resolved, err := uut.ResolveProfile(utCtxt, testEmail)
		assert.Nil(err)
		assert.Equal(testProfile.DJName, resolved.DJName)
	}
	assert.Equal(1, httpmock.GetTotalCallCount())

	// Case 2: aggregator failure surfaces when the cache has nothing
	unknownEmail := fmt.Sprintf("%s@testing.dev", uuid.NewString())
	httpmock.Reset()
	httpmock.RegisterResponder(
		"GET",
		fmt.Sprintf("%s/v1/profile", testBaseURL),
		httpmock.NewStringResponder(http.StatusNotFound, "{}"),
	)
	mockCache.On(
		"GetProfile", mock.Anything, unknownEmail,
	).Return(common.PerformerProfile{}, fmt.Errorf("cache miss")).Once()
	{
		_, err := uut.ResolveProfile(utCtxt, unknownEmail)
		assert.NotNil(err)
	}
}

func TestProfileResolverLineup(t *testing.T) {
	assert := assert.New(t)

	testClient := resty.New()
	httpmock.ActivateNonDefault(testClient.GetClient())
	defer httpmock.DeactivateAndReset()

	utCtxt := context.Background()

	testBaseURL := "http://aggregator.testing.dev"
	mockCache := mocks.NewProfileCache(t)

	uut, err := schedule.NewRestProfileResolver(
		utCtxt, buildTestAggregatorConfig(testBaseURL), mockCache, testClient,
	)
	assert.Nil(err)

	currentTime := time.Now().UTC()
	resolvedEmail := fmt.Sprintf("%s@testing.dev", uuid.NewString())
	unresolvedEmail := fmt.Sprintf("%s@testing.dev", uuid.NewString())

	resolvedProfile := common.PerformerProfile{DJName: "dj-known", Email: &resolvedEmail}

	lineup := []common.DJSlot{
		{
			ID:        uuid.NewString(),
			Position:  0,
			StartTime: currentTime,
			EndTime:   currentTime.Add(time.Hour),
			Performers: []common.PerformerProfile{
				{DJName: "placeholder", Email: &resolvedEmail},
			},
		},
		{
			ID:        uuid.NewString(),
			Position:  1,
			StartTime: currentTime.Add(time.Hour),
			EndTime:   currentTime.Add(time.Hour * 2),
			Performers: []common.PerformerProfile{
				{DJName: "dj-unknown", Email: &unresolvedEmail},
				// No booking email, nothing to resolve
				{DJName: "dj-walk-in"},
			},
		},
	}

	mockCache.On(
		"GetProfile", mock.Anything, resolvedEmail,
	).Return(resolvedProfile, nil).Once()
	mockCache.On(
		"GetProfile", mock.Anything, unresolvedEmail,
	).Return(common.PerformerProfile{}, fmt.Errorf("cache miss")).Once()
	httpmock.RegisterResponder(
		"GET",
		fmt.Sprintf("%s/v1/profile", testBaseURL),
		httpmock.NewStringResponder(http.StatusNotFound, "{}"),
	)

	enriched := uut.ResolveLineupProfiles(utCtxt, lineup)
	assert.Len(enriched, 2)
	// First slot resolved from cache
	assert.Equal("dj-known", enriched[0].Performers[0].DJName)
	// Second slot passed through untouched
	assert.Equal("dj-unknown", enriched[1].Performers[0].DJName)
	assert.Equal("dj-walk-in", enriched[1].Performers[1].DJName)
}
