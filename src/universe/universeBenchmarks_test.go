package universe

import (
	"testing"
)

const (
	benchRows = 200
	benchCols = 200
)

func newBenchUniverse(b *testing.B) *Universe {
	o := DefaultOptions
	o.Interval = 0
	o.Rows = benchRows
	o.Cols = benchCols
	u, err := New(&o, make(chan Status, 10))
	if err != nil {
		b.Fatal(err)
	}
	return u
}

func universeStep(u *Universe, b *testing.B) {
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		if err := u.SettleTemplate("testSample"); err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		u.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual || st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
	close(stateCh)
}

func universeRun(u *Universe, b *testing.B) {
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		u.SettleWithRandomData(int64(i))
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
	close(stateCh)
}

func Benchmark_Step(b *testing.B) {
	universeStep(newBenchUniverse(b), b)
}

func Benchmark_Universe(b *testing.B) {
	universeRun(newBenchUniverse(b), b)
}
