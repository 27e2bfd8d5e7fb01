// Package store holds the current merged vehicle snapshot.
//
// The snapshot is replaced wholesale after every fetch cycle and is
// immutable once published, so readers never observe a partially-updated
// mixture of old and new records. The mutex-guarded pointer swap in Store
// is the only synchronization point shared by the fetch path and the REST
// read path.
package store
