package storage

// Interface defines the contract for blob persistence operations
type Interface interface {
	Store(name string, data []byte) error
	Retrieve(name string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(name string) error
}
