package trajopt

import (
	"testing"

	"go.viam.com/test"
)

func TestSafetyMarginDefaults(t *testing.T) {
	margins := NewSafetyMarginData(0.025, 20)
	data := margins.PairData("link_1", "part")
	test.That(t, data.Margin, test.ShouldEqual, 0.025)
	test.That(t, data.Weight, test.ShouldEqual, 20)
}

func TestSafetyMarginOverrides(t *testing.T) {
	margins := NewSafetyMarginData(0.025, 20)
	margins.SetPairData("sander_disk", "part", -0.01, 20)
	margins.SetPairData("sander_shaft", "part", 0.0, 20)

	test.That(t, margins.PairData("sander_disk", "part"), test.ShouldResemble, MarginData{Margin: -0.01, Weight: 20})
	test.That(t, margins.PairData("sander_shaft", "part"), test.ShouldResemble, MarginData{Margin: 0.0, Weight: 20})

	// lookup is by unordered pair
	test.That(t, margins.PairData("part", "sander_disk"), test.ShouldResemble, MarginData{Margin: -0.01, Weight: 20})

	// overrides never leak to other pairs
	test.That(t, margins.PairData("sander_disk", "link_1"), test.ShouldResemble, MarginData{Margin: 0.025, Weight: 20})
	test.That(t, margins.PairData("link_1", "link_2"), test.ShouldResemble, MarginData{Margin: 0.025, Weight: 20})
}
