package transport

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/fsnotify/fsnotify"
)

// APIKeySource source of the media transport API credential
type APIKeySource interface {
	/*
		Key the current API key

			@returns current API key
	*/
	Key() string

	/*
		Stop end the key rotation watch loop

			@param ctxt context.Context - execution context
	*/
	Stop(ctxt context.Context) error
}

// fileAPIKeySourceImpl implements APIKeySource
//
// The key file is watched so credential rotation lands without a restart.
type fileAPIKeySourceImpl struct {
	goutils.Component
	keyFile       string
	key           string
	lock          sync.RWMutex
	watcher       *fsnotify.Watcher
	wg            sync.WaitGroup
	workerContext context.Context
	contextCancel context.CancelFunc
}

/*
NewFileAPIKeySource define new file backed API key source

	@param parentContext context.Context - parent context from which a worker context is defined
		for the file watch loop
	@param keyFile string - file holding the API key
	@returns new APIKeySource
*/
func NewFileAPIKeySource(parentContext context.Context, keyFile string) (APIKeySource, error) {
	logTags := log.Fields{
		"module":    "transport",
		"component": "api-key-source",
		"key-file":  keyFile,
	}

	initialKey, err := readKeyFile(keyFile)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to read API key file")
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to define 'fsnotify' watcher")
		return nil, err
	}
	if err := watcher.Add(keyFile); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to watch API key file")
		return nil, err
	}

	workerCtxt, cancel := context.WithCancel(parentContext)

	instance := &fileAPIKeySourceImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		keyFile:       keyFile,
		key:           initialKey,
		lock:          sync.RWMutex{},
		watcher:       watcher,
		wg:            sync.WaitGroup{},
		workerContext: workerCtxt,
		contextCancel: cancel,
	}

	instance.wg.Add(1)
	go instance.watchLoop()

	return instance, nil
}

// readKeyFile read and trim the key file content
func readKeyFile(keyFile string) (string, error) {
	content, err := os.ReadFile(keyFile)
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(string(content))
	if key == "" {
		return "", fmt.Errorf("API key file '%s' is empty", keyFile)
	}
	return key, nil
}

func (s *fileAPIKeySourceImpl) watchLoop() {
	defer s.wg.Done()
	logTags := s.GetLogTagsForContext(s.workerContext)

	log.WithFields(logTags).Info("Starting API key file watch")
	defer log.WithFields(logTags).Info("API key file watch stopped")

	for {
		select {
		case <-s.workerContext.Done():
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				newKey, err := readKeyFile(s.keyFile)
				if err != nil {
					log.WithError(err).WithFields(logTags).Error("API key reload failed")
					continue
				}
				s.lock.Lock()
				changed := newKey != s.key
				s.key = newKey
				s.lock.Unlock()
				if changed {
					log.WithFields(logTags).Info("API key rotated")
				}
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).WithFields(logTags).Error("API key file watch returned error")
		}
	}
}

func (s *fileAPIKeySourceImpl) Key() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.key
}

func (s *fileAPIKeySourceImpl) Stop(ctxt context.Context) error {
	s.contextCancel()
	if err := s.watcher.Close(); err != nil {
		return err
	}
	s.wg.Wait()
	return nil
}

// =====================================================================================
// Static key source, for test support

// staticAPIKeySourceImpl implements APIKeySource around a fixed key
type staticAPIKeySourceImpl struct {
	key string
}

/*
NewStaticAPIKeySource define new fixed value API key source

	@param key string - the API key
	@returns new APIKeySource
*/
func NewStaticAPIKeySource(key string) APIKeySource {
	return &staticAPIKeySourceImpl{key: key}
}

func (s *staticAPIKeySourceImpl) Key() string {
	return s.key
}

func (s *staticAPIKeySourceImpl) Stop(ctxt context.Context) error {
	return nil
}
