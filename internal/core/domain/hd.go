package domain

// HDRoot is the stored master secret of the wallet. Exactly one may exist.
type HDRoot struct {
	ID        int64
	Timestamp int64
	Version   int
	Secret    []byte
}

// HDChain tracks how many secrets have been drawn from one derivation
// chain. MaxDepth only ever increases; MinDepth is reserved.
type HDChain struct {
	ID        int64
	RootID    int64
	Chaincode uint64
	Mine      bool
	Sweep     bool
	MinDepth  uint64
	MaxDepth  uint64
}
