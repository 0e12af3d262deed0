package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/beatwave/onair/common"
	"github.com/bradfitz/gomemcache/memcache"
)

// ProfileCache resolved performer profile cache
type ProfileCache interface {
	/*
		CacheProfile store a resolved performer profile

			@param ctxt context.Context - execution context
			@param lookupKey string - the identity the profile was resolved from
			@param profile common.PerformerProfile - resolved profile
			@param ttl time.Duration - data retention before the entry expires
	*/
	CacheProfile(
		ctxt context.Context, lookupKey string, profile common.PerformerProfile, ttl time.Duration,
	) error

	/*
		GetProfile fetch a resolved performer profile

			@param ctxt context.Context - execution context
			@param lookupKey string - the identity the profile was resolved from
			@returns resolved profile
	*/
	GetProfile(ctxt context.Context, lookupKey string) (common.PerformerProfile, error)

	/*
		PurgeProfiles delete resolved performer profiles

			@param ctxt context.Context - execution context
			@param lookupKeys []string - list of identities to purge
	*/
	PurgeProfiles(ctxt context.Context, lookupKeys []string) error
}

// =====================================================================================
// In-Process (Local Ram) Performer Profile Cache

// inProcessCacheEntry wrapper structure holding one profile with retention support
type inProcessCacheEntry struct {
	expireAt time.Time
	profile  common.PerformerProfile
}

// inProcessProfileCacheImpl implements ProfileCache
type inProcessProfileCacheImpl struct {
	goutils.Component
	cache                      map[string]inProcessCacheEntry
	lock                       sync.RWMutex
	retentionCheckTimer        goutils.IntervalTimer
	retentionExecContext       context.Context
	retentionExecContextCancel context.CancelFunc
	wg                         sync.WaitGroup
}

/*
NewLocalProfileCache define new local in process performer profile cache

	@param parentContext context.Context - parent context from which a worker context is defined
		for the data retention enforcement process
	@param retentionCheckInterval time.Duration - cache entry retention enforce interval
	@returns new ProfileCache
*/
func NewLocalProfileCache(
	parentContext context.Context, retentionCheckInterval time.Duration,
) (ProfileCache, error) {
	logTags := log.Fields{
		"module":    "utils",
		"component": "profile-cache",
		"instance":  "in-process",
	}

	workerCtxt, cancel := context.WithCancel(parentContext)

	instance := &inProcessProfileCacheImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		cache:                      make(map[string]inProcessCacheEntry),
		lock:                       sync.RWMutex{},
		retentionExecContext:       workerCtxt,
		retentionExecContextCancel: cancel,
		wg:                         sync.WaitGroup{},
	}

	timer, err := goutils.GetIntervalTimerInstance(parentContext, &instance.wg, logTags)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define support timer")
		return nil, err
	}
	instance.retentionCheckTimer = timer

	// Start interval timer to trigger the cache retention enforcement logic
	if err := timer.Start(retentionCheckInterval, func() error {
		currentTime := time.Now().UTC()
		return instance.purgeExpiredEntry(workerCtxt, currentTime)
	}, false); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to start support timer")
		return nil, err
	}

	return instance, nil
}

func (c *inProcessProfileCacheImpl) CacheProfile(
	ctxt context.Context, lookupKey string, profile common.PerformerProfile, ttl time.Duration,
) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache[lookupKey] = inProcessCacheEntry{
		expireAt: time.Now().UTC().Add(ttl), profile: profile,
	}
	return nil
}

func (c *inProcessProfileCacheImpl) GetProfile(
	ctxt context.Context, lookupKey string,
) (common.PerformerProfile, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	entry, ok := c.cache[lookupKey]
	if !ok {
		return common.PerformerProfile{}, fmt.Errorf("profile key '%s' is unknown", lookupKey)
	}
	return entry.profile, nil
}

func (c *inProcessProfileCacheImpl) PurgeProfiles(
	ctxt context.Context, lookupKeys []string,
) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	for _, lookupKey := range lookupKeys {
		delete(c.cache, lookupKey)
	}

	return nil
}

// purgeExpiredEntry purge expired cache entries
func (c *inProcessProfileCacheImpl) purgeExpiredEntry(
	ctxt context.Context, currentTime time.Time,
) error {
	logTags := c.GetLogTagsForContext(ctxt)

	c.lock.Lock()
	defer c.lock.Unlock()

	// Check for expired entries
	purgeKeys := []string{}
	for lookupKey, entry := range c.cache {
		if entry.expireAt.Before(currentTime) {
			purgeKeys = append(purgeKeys, lookupKey)
			log.
				WithFields(logTags).
				WithField("profile-key", lookupKey).
				Debug("Cached profile expired")
		}
	}

	// Purge expired entries
	for _, purgeKey := range purgeKeys {
		delete(c.cache, purgeKey)
	}

	log.
		WithFields(logTags).
		Debugf("Purged [%d] expired profiles. [%d] remain in cache", len(purgeKeys), len(c.cache))

	return nil
}

// =====================================================================================
// Memcached Performer Profile Cache

// memcachedProfileCacheImpl implements ProfileCache
type memcachedProfileCacheImpl struct {
	goutils.Component
	client *memcache.Client
}

/*
NewMemcachedProfileCache define new memcached performer profile cache

	@param servers []string - list of memcached servers to connect to
	@returns new ProfileCache
*/
func NewMemcachedProfileCache(servers []string) (ProfileCache, error) {
	logTags := log.Fields{
		"module":    "utils",
		"component": "profile-cache",
		"instance":  "memcached",
		"servers":   servers,
	}

	// Define memcached client
	mc := memcache.New(servers...)
	if err := mc.Ping(); err != nil {
		log.WithError(err).WithFields(logTags).Error("Server Up check failed")
		return nil, err
	}

	return &memcachedProfileCacheImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, client: mc,
	}, nil
}

func (c *memcachedProfileCacheImpl) CacheProfile(
	ctxt context.Context, lookupKey string, profile common.PerformerProfile, ttl time.Duration,
) error {
	logTags := c.GetLogTagsForContext(ctxt)

	payload, err := json.Marshal(&profile)
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("profile-key", lookupKey).
			Error("Profile failed to serialize")
		return err
	}

	cacheEntry := &memcache.Item{
		Key: lookupKey, Value: payload, Expiration: int32(ttl.Seconds()),
	}
	if err := c.client.Set(cacheEntry); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("profile-key", lookupKey).
			Error("Profile failed to cache")
		return err
	}
	log.
		WithFields(logTags).
		WithField("profile-key", lookupKey).
		Debug("Cached profile")
	return nil
}

func (c *memcachedProfileCacheImpl) GetProfile(
	ctxt context.Context, lookupKey string,
) (common.PerformerProfile, error) {
	logTags := c.GetLogTagsForContext(ctxt)

	entry, err := c.client.Get(lookupKey)
	if err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("profile-key", lookupKey).
			Debug("Profile not in cache")
		return common.PerformerProfile{}, err
	}

	var profile common.PerformerProfile
	if err := json.Unmarshal(entry.Value, &profile); err != nil {
		log.
			WithError(err).
			WithFields(logTags).
			WithField("profile-key", lookupKey).
			Error("Cached profile failed to parse")
		return common.PerformerProfile{}, err
	}
	return profile, nil
}

func (c *memcachedProfileCacheImpl) PurgeProfiles(
	ctxt context.Context, lookupKeys []string,
) error {
	logTags := c.GetLogTagsForContext(ctxt)
	var err error
	failedKeys := []string{}
	// Go through each entry
	for _, lookupKey := range lookupKeys {
		if lclErr := c.client.Delete(lookupKey); lclErr != nil && lclErr != memcache.ErrCacheMiss {
			failedKeys = append(failedKeys, lookupKey)
			log.
				WithError(lclErr).
				WithFields(logTags).
				WithField("profile-key", lookupKey).
				Error("Profile purge failed")
		}
	}
	if len(failedKeys) > 0 {
		err = fmt.Errorf("failed to purge one or more profiles")
		log.
			WithError(err).
			WithFields(logTags).
			WithField("profile-keys", failedKeys).
			Error("Failed to purge profiles")
	}
	return err
}
