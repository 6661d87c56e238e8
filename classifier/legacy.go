package classifier

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/dtwgesture/dtw"
	"github.com/katalvlaran/dtwgesture/internal/tokens"
)

// loadV1 reads the legacy layout. Those files carry no scaling ranges, so
// a legacy model with scaling enabled loads but cannot predict.
func (d *DTW) loadV1(tr *tokens.Reader) error {
	var err error
	if d.dims, err = tr.KeyInt("NumberOfDimensions:"); err != nil {
		return err
	}
	numClasses, err := tr.KeyInt("NumberOfClasses:")
	if err != nil {
		return err
	}
	n, err := tr.KeyInt("NumberOfTemplates:")
	if err != nil {
		return err
	}
	if n < 1 {
		return fmt.Errorf("%w: %d templates", ErrTemplateCount, n)
	}
	method, err := tr.KeyInt("DistanceMethod:")
	if err != nil {
		return err
	}
	if d.useNullRejection, err = tr.KeyBool("UseNullRejection:"); err != nil {
		return err
	}
	if d.useSmoothing, err = tr.KeyBool("UseSmoothing:"); err != nil {
		return err
	}
	if d.smoothingFactor, err = tr.KeyInt("SmoothingFactor:"); err != nil {
		return err
	}
	if d.useScaling, err = tr.KeyBool("UseScaling:"); err != nil {
		return err
	}
	if d.useZNorm, err = tr.KeyBool("UseZNormalisation:"); err != nil {
		return err
	}
	if d.offsetFirst, err = tr.KeyBool("OffsetUsingFirstSample:"); err != nil {
		return err
	}
	if d.align.Constrain, err = tr.KeyBool("ConstrainWarpingPath:"); err != nil {
		return err
	}
	if d.align.Radius, err = tr.KeyFloat("Radius:"); err != nil {
		return err
	}
	rm, err := tr.KeyInt("RejectionMode:")
	if err != nil {
		return err
	}
	coeff, err := tr.KeyFloat("NullRejectionCoeff:")
	if err != nil {
		return err
	}
	if !(coeff > 0) {
		return ErrBadNullRejectionCoeff
	}
	if d.avgLength, err = tr.KeyInt("OverallAverageTemplateLength:"); err != nil {
		return err
	}

	d.align.Method = dtw.DistanceMethod(method)
	d.rejectionMode = RejectionMode(rm)
	d.nullRejectionCoeff = coeff
	if err = d.checkSettings(); err != nil {
		return err
	}
	if err = d.readTemplates(tr, n, true); err != nil {
		return err
	}
	if numClasses != n {
		d.log.Warn("legacy model class count differs from template count",
			zap.Int("classes", numClasses), zap.Int("templates", n))
	}
	if d.useScaling {
		d.log.Warn("legacy model uses scaling but stores no ranges; prediction will fail")
	}
	d.finishLoad()
	return nil
}
