package meshing

import (
	"context"
	"testing"

	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

func makeChunk(b *testing.B) *world.Chunk {
	store, err := world.NewChunkStore(world.DefaultDimensions)
	if err != nil {
		b.Fatal(err)
	}
	if err := store.Generate(world.NewNoiseGenerator(1337, world.DefaultNoiseParams), registry.Default(), world.ChunkCoord{}); err != nil {
		b.Fatal(err)
	}
	return store.GetChunk(world.ChunkCoord{}, false)
}

func BenchmarkBuildChunk(b *testing.B) {
	ch := makeChunk(b)
	m := NewMesher(registry.Default(), WithAtlas(registry.AtlasFor(registry.Default())))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.BuildChunk(ch); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuildPerVoxel(b *testing.B) {
	ch := makeChunk(b)
	m := NewMesher(registry.Default())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.BuildPerVoxel(ch); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMeshStore(b *testing.B) {
	store, err := world.NewChunkStore(world.DefaultDimensions)
	if err != nil {
		b.Fatal(err)
	}
	coords := world.CoordsInBox(world.ChunkCoord{X: -1, Z: -1}, world.ChunkCoord{X: 1, Z: 1})
	if err := store.Generate(world.NewNoiseGenerator(1337, world.DefaultNoiseParams), registry.Default(), coords...); err != nil {
		b.Fatal(err)
	}
	pool := NewWorkerPool(NewMesher(registry.Default()), 4, 16)
	defer pool.Shutdown()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := pool.MeshStore(context.Background(), store); err != nil {
			b.Fatal(err)
		}
	}
}
