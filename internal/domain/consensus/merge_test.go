package consensus_test

import (
	"testing"

	"github.com/okian/draftboard/internal/domain/consensus"
	"github.com/okian/draftboard/internal/domain/identity"
	"github.com/okian/draftboard/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func row(name, team, pos string, points float64, rank int, stats map[model.Stat]float64) model.ScoredRow {
	var l model.StatLine
	for s, v := range stats {
		l[s] = model.Some(v)
	}
	return model.ScoredRow{
		ProviderRow: model.ProviderRow{Key: identity.NewKey(name, team, pos), Stats: l},
		Points:      points,
		Rank:        rank,
	}
}

func supplied(stats ...model.Stat) [model.NumStats]bool {
	var out [model.NumStats]bool
	for _, s := range stats {
		out[s] = true
	}
	return out
}

func TestMerge(t *testing.T) {
	Convey("Given two providers with overlapping players", t, func() {
		a := model.ProviderTable{
			Provider: "A",
			Supplied: supplied(model.RushYds, model.Receptions),
			Rows: []model.ScoredRow{
				row("Player X", "NYG", "K", 20, 1, map[model.Stat]float64{model.RushYds: 100, model.Receptions: 10}),
				row("Player Y", "NYJ", "K", 10, 2, map[model.Stat]float64{model.RushYds: 50}),
				row("Player Z", "DAL", "K", 5, 3, nil),
			},
		}
		b := model.ProviderTable{
			Provider: "B",
			Supplied: supplied(model.RushYds),
			Rows: []model.ScoredRow{
				row("Player X", "NYG", "K", 22, 1, map[model.Stat]float64{model.RushYds: 120}),
				row("Player Y", "NYJ", "K", 8, 2, map[model.Stat]float64{model.RushYds: 40}),
			},
		}

		frame := consensus.Merge([]model.ProviderTable{a, b})

		Convey("Then the frame keeps every player once, in key order", func() {
			So(frame.Providers, ShouldResemble, []string{"A", "B"})
			So(len(frame.Records), ShouldEqual, 3)
			So(frame.Records[0].Player, ShouldEqual, "Player X")
			So(frame.Records[1].Player, ShouldEqual, "Player Y")
			So(frame.Records[2].Player, ShouldEqual, "Player Z")
		})

		Convey("Then consensus points average the providers", func() {
			So(frame.Records[0].ProjectedPoints, ShouldEqual, 21.0)
			So(frame.Records[1].ProjectedPoints, ShouldEqual, 9.0)
		})

		Convey("Then a player missing from one provider keeps that provider's value alone", func() {
			z := frame.Records[2]
			So(z.ProjectedPoints, ShouldEqual, 5.0)
			So(z.Scores[0].Present, ShouldBeTrue)
			So(z.Scores[1].Present, ShouldBeFalse)
		})

		Convey("Then statistics average only present values", func() {
			x := frame.Records[0]
			So(x.Stats[model.RushYds], ShouldResemble, model.Some(110))
			So(x.Stats[model.Receptions], ShouldResemble, model.Some(10))
			So(x.Stats[model.PassYds].Valid(), ShouldBeFalse)
			So(frame.StatPresent[model.RushYds], ShouldBeTrue)
			So(frame.StatPresent[model.Receptions], ShouldBeTrue)
			So(frame.StatPresent[model.PassYds], ShouldBeFalse)
		})
	})

	Convey("Given providers disagreeing on team", t, func() {
		a := model.ProviderTable{Provider: "A", Rows: []model.ScoredRow{row("Player X", "NYG", "WR", 10, 1, nil)}}
		b := model.ProviderTable{Provider: "B", Rows: []model.ScoredRow{row("Player X", "DAL", "WR", 12, 1, nil)}}

		frame := consensus.Merge([]model.ProviderTable{a, b})

		Convey("Then the identities stay distinct", func() {
			So(len(frame.Records), ShouldEqual, 2)
			So(frame.Records[0].Team, ShouldEqual, "DAL")
		})
	})

	Convey("Given no tables", t, func() {
		frame := consensus.Merge(nil)
		So(frame.Records, ShouldBeEmpty)
	})
}

func TestConsensusPoints(t *testing.T) {
	Convey("Given per-provider scores", t, func() {
		So(consensus.ConsensusPoints([]model.ProviderScore{{Present: true, Points: 10.005}, {Present: true, Points: 10}}), ShouldEqual, 10.0)
		So(consensus.ConsensusPoints([]model.ProviderScore{{}, {}}), ShouldEqual, 0)
	})
}

func TestJoinADP(t *testing.T) {
	Convey("Given a frame and ADP values by canonical name", t, func() {
		frame := &model.Frame{Records: []model.PlayerRecord{
			{Key: identity.NewKey("Bijan Robinson", "ATL", "RB")},
			{Key: identity.NewKey("Nobody Known", "FA", "WR")},
		}}

		matched := consensus.JoinADP(frame, map[string]float64{"Bijan Robinson": 2.1})

		Convey("Then matches get their ADP and the rest stay absent", func() {
			So(matched, ShouldEqual, 1)
			So(frame.Records[0].ADP, ShouldResemble, model.Some(2.1))
			So(frame.Records[1].ADP.Valid(), ShouldBeFalse)
		})
	})
}
