package naming_test

import (
	"sort"
	"strings"
	"testing"

	"github.com/okian/replaymerge/internal/domain/naming"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given the default encoder", t, func() {
		enc := naming.New()

		Convey("When the name has accents and punctuation", func() {
			out := enc.Normalize("Jöhn_Döe!", "Player1")

			Convey("Then non-ASCII runes should be dropped", func() {
				So(out, ShouldEqual, "Jhn_De!")
			})
		})

		Convey("When the name has whitespace, control and unsafe characters", func() {
			out := enc.Normalize(" a b\tc\x01<d>:e\"f/g\\h|i?j*k\n", "Player1")

			Convey("Then all of them should be removed", func() {
				So(out, ShouldEqual, "abcdefghijk")
			})
		})

		Convey("When the name normalizes to nothing", func() {
			Convey("Then the fallback should be returned", func() {
				So(enc.Normalize("  ", "Player1"), ShouldEqual, "Player1")
				So(enc.Normalize("日本語", "Player2"), ShouldEqual, "Player2")
				So(enc.Normalize("", "X"), ShouldEqual, "X")
			})
		})

		Convey("When normalizing twice", func() {
			once := enc.Normalize("Mr. Yo ★", "Player1")

			Convey("Then it should be idempotent", func() {
				So(enc.Normalize(once, "Player1"), ShouldEqual, once)
				So(once, ShouldEqual, "Mr.Yo")
			})
		})
	})

	Convey("Given an encoder with transliteration", t, func() {
		enc := naming.New(naming.WithTransliteration(true))

		Convey("Then diacritics should be folded to ASCII", func() {
			So(enc.Normalize("Jöhn_Döe!", "Player1"), ShouldEqual, "John_Doe!")
			So(enc.Normalize("Ærø", "Player1"), ShouldEqual, "r")
		})
	})
}

func TestMatchAndZipNames(t *testing.T) {
	Convey("Given two player names", t, func() {
		enc := naming.New()

		Convey("Then the match name should join them with _vs_", func() {
			So(enc.MatchName("Hera", "TheViper"), ShouldEqual, "Hera_vs_TheViper")
		})

		Convey("Then empty names should fall back by position", func() {
			So(enc.MatchName("", "  "), ShouldEqual, "Player1_vs_Player2")
		})

		Convey("Then the zip name should add the zip extension", func() {
			So(enc.ZipFilename("Hera", "Liereyy"), ShouldEqual, "Hera_vs_Liereyy.zip")
		})

		Convey("Then custom placeholders should be honored", func() {
			custom := naming.New(naming.WithPlaceholders("Home", "Away"))
			So(custom.MatchName("", ""), ShouldEqual, "Home_vs_Away")
		})
	})
}

func TestReplayFilename(t *testing.T) {
	Convey("Given a match between two players", t, func() {
		enc := naming.New()

		Convey("When a game has a single replay", func() {
			name := enc.ReplayFilename("Hera", "Viper", 0, 0, 1)

			Convey("Then there should be no suffix", func() {
				So(name, ShouldEqual, "Hera_vs_Viper_G1.aoe2record")
			})
		})

		Convey("When a game has three replays", func() {
			var names []string
			for i := 0; i < 3; i++ {
				names = append(names, enc.ReplayFilename("Hera", "Viper", 1, i, 3))
			}

			Convey("Then suffixes should be single letters in order", func() {
				So(names, ShouldResemble, []string{
					"Hera_vs_Viper_G2a.aoe2record",
					"Hera_vs_Viper_G2b.aoe2record",
					"Hera_vs_Viper_G2c.aoe2record",
				})
				So(sort.StringsAreSorted(names), ShouldBeTrue)
			})
		})

		Convey("When a game has thirty replays", func() {
			var names []string
			for i := 0; i < 30; i++ {
				names = append(names, enc.ReplayFilename("A", "B", 0, i, 30))
			}

			Convey("Then every suffix should have two letters and sort in order", func() {
				So(names[0], ShouldEqual, "A_vs_B_G1aa.aoe2record")
				So(names[25], ShouldEqual, "A_vs_B_G1az.aoe2record")
				So(names[26], ShouldEqual, "A_vs_B_G1ba.aoe2record")
				So(sort.StringsAreSorted(names), ShouldBeTrue)
			})
		})

		Convey("When the extension is customized", func() {
			custom := naming.New(naming.WithExtension(".mgz"))

			Convey("Then it should be used without doubling the dot", func() {
				So(custom.ReplayFilename("A", "B", 0, 0, 1), ShouldEqual, "A_vs_B_G1.mgz")
			})
		})

		Convey("When previewing a dummy replay", func() {
			preview := enc.ReplayFilenamePreview("A", "B", 0, 1, 2, true)
			plain := enc.ReplayFilenamePreview("A", "B", 0, 1, 2, false)

			Convey("Then it should annotate without changing the base name", func() {
				So(plain, ShouldEqual, "A_vs_B_G1b.aoe2record")
				So(preview, ShouldEqual, plain+" (dummy file)")
				So(strings.HasPrefix(preview, enc.ReplayFilename("A", "B", 0, 1, 2)), ShouldBeTrue)
			})
		})
	})
}

func TestBase26(t *testing.T) {
	Convey("Given replay counts", t, func() {
		Convey("Then suffix widths should be ceil(log26(count))", func() {
			So(naming.SuffixWidth(0), ShouldEqual, 0)
			So(naming.SuffixWidth(1), ShouldEqual, 0)
			So(naming.SuffixWidth(2), ShouldEqual, 1)
			So(naming.SuffixWidth(26), ShouldEqual, 1)
			So(naming.SuffixWidth(27), ShouldEqual, 2)
			So(naming.SuffixWidth(676), ShouldEqual, 2)
			So(naming.SuffixWidth(677), ShouldEqual, 3)
		})

		Convey("Then numbers should be left padded with a", func() {
			So(naming.ToBase26(0, 1), ShouldEqual, "a")
			So(naming.ToBase26(25, 1), ShouldEqual, "z")
			So(naming.ToBase26(1, 3), ShouldEqual, "aab")
			So(naming.ToBase26(27, 2), ShouldEqual, "bb")
		})

		Convey("Then numbers wider than the width should not be truncated", func() {
			So(naming.ToBase26(26, 1), ShouldEqual, "ba")
		})

		Convey("Then a single replay should get no sub number", func() {
			So(naming.SubNumber(0, 1), ShouldEqual, "")
			So(naming.SubNumber(0, 0), ShouldEqual, "")
		})
	})
}
