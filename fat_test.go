package fat12

import "testing"

func TestNextCluster(t *testing.T) {
	// A 3-entry FAT12: cluster 2 -> 3, cluster 3 -> end-of-chain,
	// cluster 4 -> free.
	fat := make([]byte, 9)
	setEntry := func(cluster, value uint16) {
		b := cluster + cluster/2
		if cluster%2 == 0 {
			fat[b] = byte(value)
			fat[b+1] = (fat[b+1] & 0xF0) | byte(value>>8)
		} else {
			fat[b] = (fat[b] & 0x0F) | byte(value<<4)
			fat[b+1] = byte(value >> 4)
		}
	}
	setEntry(2, 3)
	setEntry(3, 0xFFF)
	setEntry(4, 0)

	tests := []struct {
		name    string
		cluster uint16
		want    uint16
		wantOK  bool
	}{
		{"data cluster chains forward", 2, 3, true},
		{"end of chain marker", 3, 0, false},
		{"free cluster", 4, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := nextCluster(fat, tt.cluster)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Fatalf("next = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextCluster_OutOfBounds(t *testing.T) {
	fat := make([]byte, 2)
	if _, ok := nextCluster(fat, 10); ok {
		t.Fatal("expected ok=false for a cluster beyond the buffer")
	}
}
