package cart

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAddItemSnapshotsAndIncrements(t *testing.T) {
	c := New("warung-abc")

	nasi := &models.Product{ID: "p1", Name: "Nasi Goreng", Price: 10.00, ImageURL: "/img/nasi.jpg"}
	sate := &models.Product{ID: "p2", Name: "Sate Ayam", Price: 25.00}

	c.AddItem(nasi)
	c.AddItem(nasi)
	c.AddItem(sate)

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.Items[0].Qty)
	assert.Equal(t, "Nasi Goreng", c.Items[0].Name)
	assert.Equal(t, 10.00, c.Items[0].UnitPrice)
	assert.Equal(t, 1, c.Items[1].Qty)

	assert.Equal(t, 45.00, c.Total())
	assert.Equal(t, 3, c.ItemCount())
}

func TestAddItemKeepsSnapshotOnRepeat(t *testing.T) {
	c := New("warung-abc")

	p := &models.Product{ID: "p1", Name: "Es Teh", Price: 5.00}
	c.AddItem(p)

	// A later catalog edit must not touch the existing line
	p.Price = 7.50
	p.Name = "Es Teh Manis"
	c.AddItem(p)

	assert.Equal(t, "Es Teh", c.Items[0].Name)
	assert.Equal(t, 5.00, c.Items[0].UnitPrice)
	assert.Equal(t, 2, c.Items[0].Qty)
	assert.Equal(t, 10.00, c.Total())
}

func TestUpdateQuantity(t *testing.T) {
	c := New("warung-abc")
	c.AddItem(&models.Product{ID: "p1", Name: "Bakso", Price: 12.00})

	c.UpdateQuantity("p1", 5)
	assert.Equal(t, 5, c.Items[0].Qty)
	assert.Equal(t, 60.00, c.Total())

	// Unknown product is a no-op
	c.UpdateQuantity("missing", 3)
	assert.Len(t, c.Items, 1)
}

func TestUpdateQuantityBelowOneRemovesLine(t *testing.T) {
	c := New("warung-abc")
	c.AddItem(&models.Product{ID: "p1", Name: "Bakso", Price: 12.00})
	c.AddItem(&models.Product{ID: "p2", Name: "Mie Ayam", Price: 11.00})

	c.UpdateQuantity("p1", 0)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].ProductID)

	c.UpdateQuantity("p2", -1)
	assert.True(t, c.IsEmpty())
}

func TestRemoveItem(t *testing.T) {
	c := New("warung-abc")
	c.AddItem(&models.Product{ID: "p1", Name: "Bakso", Price: 12.00})
	c.AddItem(&models.Product{ID: "p1", Name: "Bakso", Price: 12.00})

	c.RemoveItem("p1")
	assert.True(t, c.IsEmpty())

	// Removing again is a no-op
	c.RemoveItem("p1")
	assert.True(t, c.IsEmpty())
}

func TestClearIsIdempotent(t *testing.T) {
	c := New("warung-abc")
	c.AddItem(&models.Product{ID: "p1", Name: "Bakso", Price: 12.00})

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0.00, c.Total())
	assert.Equal(t, 0, c.ItemCount())

	c.Clear()
	assert.True(t, c.IsEmpty())
}
