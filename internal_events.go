package mda

type internalNodeUpdate struct {
	node *internalNode
}
