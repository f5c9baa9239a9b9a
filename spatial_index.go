package arcade

// SpatialIndexIterator is called for each body stored in an index.
type SpatialIndexIterator func(body *Body)

// SpatialIndexer is the broad phase used by a World. It is implemented by Quadtree.
type SpatialIndexer interface {
	// Count returns the number of bodies currently stored in the index.
	Count() int

	// Each iterates over all bodies in the spatial index.
	Each(f SpatialIndexIterator)

	// Insert adds bodies to the index using their current move bounds.
	Insert(bodies ...*Body)

	// Retrieve appends to out every body that may overlap region and returns the extended slice.
	// Candidates come back in a stable order: node order, then insertion order.
	Retrieve(out []*Body, region AABB) []*Body

	// Clear removes every body from the index.
	Clear()
}
