package reactor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on source change with cleanup", func(t *testing.T) {
		log := []string{}

		count := NewSource(0)
		log = append(log, fmt.Sprintf("%d", count.Read()))

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))
			OnCleanup(func() { log = append(log, "cleanup") })
		})

		count.Write(10)
		log = append(log, fmt.Sprintf("%d", count.Read()))
		count.Write(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("writes to another source", func(t *testing.T) {
		log := []string{}

		count := NewSource(0)
		double := NewSource(0)

		NewEffect(func() {
			double.Write(count.Read() * 2)
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", double.Read()))
			OnCleanup(func() { log = append(log, "cleanup") })
		})

		count.Write(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("nested effects", func(t *testing.T) {
		log := []string{}

		count := NewSource(0)

		NewEffect(func() {
			count.Read()
			log = append(log, "running")

			NewEffect(func() {
				log = append(log, "running nested")
				OnCleanup(func() { log = append(log, "cleanup nested") })
			})

			OnCleanup(func() { log = append(log, "cleanup") })
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("diamond dependency", func(t *testing.T) {
		log := []string{}

		count := NewSource(0)
		double := NewDerived(func() int { return count.Read() * 2 })
		quad := NewDerived(func() int { return count.Read() * 4 })

		NewEffect(func() {
			log = append(log, fmt.Sprintf("running %d %d", double.Read(), quad.Read()))
			OnCleanup(func() { log = append(log, fmt.Sprintf("cleanup %d %d", double.Read(), quad.Read())) })
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running 0 0",
			"cleanup 20 40",
			"running 20 40",
		}, log)
	})

	t.Run("deps change between runs", func(t *testing.T) {
		log := []string{}

		count := NewSource(0)

		initialized := false
		NewEffect(func() {
			log = append(log, "running")
			if !initialized {
				count.Read()
			}
			initialized = true
		})

		count.Write(1)
		count.Write(2) // effect no longer depends on count

		assert.Equal(t, []string{
			"running",
			"running",
		}, log)
	})

	t.Run("skips rerun when dependency value is unchanged", func(t *testing.T) {
		log := []string{}

		count := NewSource(1)
		zero := NewDerived(func() int { return count.Read() * 0 })

		NewEffect(func() {
			log = append(log, fmt.Sprintf("ran %d", zero.Read()))
		})

		count.Write(5)
		count.Write(9)

		assert.Equal(t, []string{
			"ran 0",
		}, log, "zero never actually changes value, so the effect must not rerun on a Pending-only propagation")
	})

	t.Run("render effects drain before user effects", func(t *testing.T) {
		log := []string{}

		count := NewSource(0)

		NewEffect(func() {
			log = append(log, fmt.Sprintf("user %d", count.Read()))
		})
		NewRenderEffect(func() {
			log = append(log, fmt.Sprintf("render %d", count.Read()))
		})

		count.Write(1)

		assert.Equal(t, []string{
			"user 0",
			"render 0",
			"render 1",
			"user 1",
		}, log)
	})
}
