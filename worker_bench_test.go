package workz

import (
	"testing"
)

func BenchmarkSpawnJoin(b *testing.B) {
	for i := 0; i < b.N; i++ {
		handle := Spawn("bench", func() int { return i })
		if _, err := handle.Join(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSpawnerSpawnJoin(b *testing.B) {
	spawner := NewSpawner[int]("bench")
	defer spawner.Close() //nolint:errcheck

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handle := spawner.Spawn(func() int { return i })
		if _, err := handle.Join(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStatusRead(b *testing.B) {
	release := make(chan struct{})
	handle := Spawn("bench", func() int {
		<-release
		return 0
	})
	defer func() {
		close(release)
		_, _ = handle.Join() //nolint:errcheck
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = handle.Status()
	}
}
