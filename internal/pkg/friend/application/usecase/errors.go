package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a
// use case.
var ErrPersistence = fmt.Errorf("friend use case persistence error")

// statusCacheKey is the viewer-relative cache key for friend status.
func statusCacheKey(viewerID, otherID string) string {
	return "friend:status:" + viewerID + ":" + otherID
}
