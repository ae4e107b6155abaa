package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lexlookup/config"
)

// The cache is a package used for large objects that we want to build only
// once per process, especially if we are running as part of a server. For
// now these are lexica, which take a while to build from their word lists.

type cache struct {
	sync.Mutex
	objects map[string]interface{}
}

type loadFunc func(cfg *config.Config, key string) (interface{}, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

var createOnce sync.Once

func (c *cache) load(cfg *config.Config, key string, loadFunc loadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")

	obj, err := loadFunc(cfg, key)
	if err != nil {
		return err
	}
	c.objects[key] = obj

	return nil
}

func (c *cache) get(cfg *config.Config, key string, loadFunc loadFunc) (interface{}, error) {

	var ok bool
	var obj interface{}
	c.Lock()
	defer c.Unlock()
	if obj, ok = c.objects[key]; !ok {
		err := c.load(cfg, key, loadFunc)
		if err != nil {
			return nil, err
		}
		return c.objects[key], nil
	}
	log.Debug().Str("key", key).Msg("getting obj from cache")

	return obj, nil
}

func (c *cache) evict(key string) bool {
	c.Lock()
	defer c.Unlock()
	_, ok := c.objects[key]
	delete(c.objects, key)
	return ok
}

func (c *cache) keys() []string {
	c.Lock()
	defer c.Unlock()
	keys := make([]string, 0, len(c.objects))
	for k := range c.objects {
		keys = append(keys, k)
	}
	return keys
}

func CreateGlobalObjectCache() {
	createOnce.Do(func() {
		GlobalObjectCache = &cache{objects: make(map[string]interface{})}
	})
}

// Load returns the object stored under name, calling loadFunc to create it
// if it is not there yet. A failed load is not cached.
func Load(cfg *config.Config, name string, loadFunc loadFunc) (interface{}, error) {
	CreateGlobalObjectCache()
	return GlobalObjectCache.get(cfg, name, loadFunc)
}

// Evict drops name from the cache, so that the next Load builds it again.
// It returns whether there was anything to drop.
func Evict(name string) bool {
	CreateGlobalObjectCache()
	return GlobalObjectCache.evict(name)
}

// Keys lists the names of everything in the cache, in no particular order.
func Keys() []string {
	CreateGlobalObjectCache()
	return GlobalObjectCache.keys()
}
