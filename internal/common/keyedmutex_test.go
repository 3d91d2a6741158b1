package common

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("chat-1")
			counter++
			km.Unlock("chat-1")
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutex_DistinctKeysDoNotBlock(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("chat-1")
	done := make(chan struct{})
	go func() {
		km.Lock("chat-2")
		km.Unlock("chat-2")
		close(done)
	}()
	<-done
	km.Unlock("chat-1")
}

func TestKeyedMutex_ReleasesMapEntries(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("chat-1")
	km.Unlock("chat-1")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.locks)
}
