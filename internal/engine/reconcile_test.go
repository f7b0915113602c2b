package engine

import (
	"reflect"
	"testing"

	"entrematch/internal/domain"
)

func mapping(pairs map[string][]string, order ...string) []domain.ClusterSectors {
	out := make([]domain.ClusterSectors, 0, len(order))
	for _, name := range order {
		out = append(out, domain.ClusterSectors{Cluster: name, Sectors: pairs[name]})
	}
	return out
}

func TestReconcile(t *testing.T) {
	abc := mapping(map[string][]string{
		"A": {"s1"},
		"B": {"s2"},
		"C": {"s3"},
	}, "A", "B", "C")

	cases := []struct {
		name string
		in   ReconcileInput
		want []string
	}{
		{
			name: "intersection seeds",
			in: ReconcileInput{
				SectorTrack:      []string{"A", "B"},
				PersonalityTrack: []string{"B", "C"},
				Mapping:          abc,
				Coverage:         []string{"s2"},
			},
			want: []string{"B"},
		},
		{
			name: "disjoint tracks take both leaders",
			in: ReconcileInput{
				SectorTrack:      []string{"A"},
				PersonalityTrack: []string{"C"},
				Mapping:          abc,
				Coverage:         []string{"s1", "s3"},
			},
			want: []string{"A", "C"},
		},
		{
			name: "unmapped seed is substituted by best new coverage",
			in: ReconcileInput{
				SectorTrack:      []string{"A", "D"},
				PersonalityTrack: []string{"X"},
				Mapping: mapping(map[string][]string{
					"A": {"s1"},
					"D": {"s1", "s2"},
				}, "A", "D"),
				Coverage: []string{"s1", "s2"},
			},
			want: []string{"A", "D"},
		},
		{
			name: "substitution ties go to the earlier candidate",
			in: ReconcileInput{
				SectorTrack:      []string{"A"},
				PersonalityTrack: []string{"X", "C", "B"},
				Mapping:          abc,
				Coverage:         []string{"s1"},
			},
			want: []string{"A", "C"},
		},
		{
			name: "top-up adds a cluster for a missing sector",
			in: ReconcileInput{
				SectorTrack:      []string{"A"},
				PersonalityTrack: []string{"A", "B"},
				Mapping:          abc,
				Coverage:         []string{"s1", "s2"},
			},
			want: []string{"A", "B"},
		},
		{
			name: "covered seed gets no top-up",
			in: ReconcileInput{
				SectorTrack:      []string{"A"},
				PersonalityTrack: []string{"A", "B"},
				Mapping:          abc,
				Coverage:         []string{"s1"},
			},
			want: []string{"A"},
		},
		{
			name: "result is truncated to two",
			in: ReconcileInput{
				SectorTrack:      []string{"A", "B", "C"},
				PersonalityTrack: []string{"C", "B", "A"},
				Mapping:          abc,
				Coverage:         []string{"s1", "s2", "s3"},
			},
			want: []string{"A", "B"},
		},
		{
			name: "nothing mapped falls back to the seed",
			in: ReconcileInput{
				SectorTrack:      []string{"A"},
				PersonalityTrack: []string{"X"},
				Coverage:         []string{"s1"},
			},
			want: []string{"A", "X"},
		},
		{
			name: "empty sector track seeds from personality",
			in: ReconcileInput{
				PersonalityTrack: []string{"B"},
				Mapping:          abc,
				Coverage:         []string{"s2"},
			},
			want: []string{"B"},
		},
		{
			name: "empty personality track seeds from sectors",
			in: ReconcileInput{
				SectorTrack: []string{"C", "A"},
				Mapping:     abc,
				Coverage:    []string{"s1", "s3"},
			},
			want: []string{"C", "A"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Reconcile(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReconcileBothEmpty(t *testing.T) {
	if got := Reconcile(ReconcileInput{Coverage: []string{"s1"}}); got != nil {
		t.Fatalf("expected no clusters, got %v", got)
	}
}

func TestReconcileIsRepeatable(t *testing.T) {
	in := ReconcileInput{
		SectorTrack:      []string{"A", "D"},
		PersonalityTrack: []string{"X", "B"},
		Mapping: mapping(map[string][]string{
			"A": {"s1"},
			"B": {"s3"},
			"D": {"s1", "s2"},
		}, "A", "B", "D"),
		Coverage: []string{"s1", "s2", "s3"},
	}
	sectorTrack := append([]string(nil), in.SectorTrack...)

	first := Reconcile(in)
	second := Reconcile(in)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reconcile not repeatable: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(in.SectorTrack, sectorTrack) {
		t.Fatalf("input mutated: %v", in.SectorTrack)
	}
	if len(first) == 0 || len(first) > MaxFinalClusters {
		t.Fatalf("unexpected size %v", first)
	}
}
