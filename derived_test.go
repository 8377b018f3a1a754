package reactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerived(t *testing.T) {
	t.Run("derives value from source", func(t *testing.T) {
		log := []string{}

		count := NewSource(1)
		double := NewDerived(func() int {
			log = append(log, "doubling")
			return count.Read() * 2
		})
		plusTwo := NewDerived(func() int {
			log = append(log, "adding")
			return double.Read() + 2
		})

		assert.Equal(t, 1, count.Read())
		assert.Equal(t, 2, double.Read())
		assert.Equal(t, 4, plusTwo.Read())

		count.Write(10)
		assert.Equal(t, 10, count.Read())
		assert.Equal(t, 20, double.Read())
		assert.Equal(t, 22, plusTwo.Read())

		assert.Equal(t, []string{
			"doubling",
			"adding",
			"doubling",
			"adding",
		}, log)
	})

	t.Run("does not propagate when value unchanged", func(t *testing.T) {
		log := []string{}

		count := NewSource(1)
		a := NewDerived(func() int {
			log = append(log, "running a")
			return count.Read() * 0 // always 0
		})
		b := NewDerived(func() int {
			log = append(log, "running b")
			return a.Read() + 1
		})

		a.Read()
		b.Read()

		count.Write(10) // a recomputes (still 0), b's dirty check confirms no change

		assert.Equal(t, []string{
			"running a",
			"running b",
			"running a",
		}, log)
	})

	t.Run("lazy: nothing runs before first read", func(t *testing.T) {
		ran := false
		count := NewSource(1)
		double := NewDerived(func() int {
			ran = true
			return count.Read() * 2
		})
		assert.False(t, ran)

		double.Read()
		assert.True(t, ran)
	})

	t.Run("conditional dependency switches branch", func(t *testing.T) {
		log := []string{}

		useA := NewSource(true)
		a := NewSource(1)
		b := NewSource(2)

		result := NewDerived(func() int {
			if useA.Read() {
				log = append(log, "reading a")
				return a.Read()
			}
			log = append(log, "reading b")
			return b.Read()
		})

		assert.Equal(t, 1, result.Read())

		useA.Write(false)
		assert.Equal(t, 2, result.Read())

		// a is no longer a dependency: writing it must not affect result.
		before := len(log)
		a.Write(100)
		result.Read()
		assert.Equal(t, before, len(log))
	})
}
