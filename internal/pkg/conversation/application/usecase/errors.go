package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a
// use case. The transport layer maps it to a generic failure signal without
// terminating the connection.
var ErrPersistence = fmt.Errorf("conversation use case persistence error")
