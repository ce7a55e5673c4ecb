package generator

import (
	"fmt"
	"strings"

	"slide_illustrator/constraints"
)

const systemInstruction = "You are an expert presentation content writer. " +
	"Return ONLY a valid JSON object with exactly the requested fields. No explanations, no code fences."

// BuildPrompt assembles the instruction payload for one request. The result
// is deterministic for identical inputs; temperature and sampling belong to
// the model client, not here. The same prompt is reused verbatim across
// retries.
func BuildPrompt(spec Spec, store *constraints.Store) (Prompt, error) {
	fieldSpecs, err := store.Fields(spec.Variant)
	if err != nil {
		return Prompt{}, err
	}

	var sb strings.Builder
	writeTaskInstructions(&sb, spec)
	writeTargetLabels(&sb, spec)
	writeNarrativeContext(&sb, spec.Narrative)
	writeConstraints(&sb, fieldSpecs)
	writeOutputShape(&sb, fieldSpecs)

	sb.WriteString("\nCRITICAL:\n")
	sb.WriteString("- Every field must meet its character range exactly.\n")
	sb.WriteString("- Count characters carefully; spaces count.\n")
	sb.WriteString("- Markup tags (<strong>, <em>, <br>) do NOT count toward character limits.\n")
	sb.WriteString(fmt.Sprintf("- Use a %s tone appropriate for a %s audience.\n", spec.Tone, spec.Audience))

	shape := make([]FieldShape, len(fieldSpecs))
	for i, fs := range fieldSpecs {
		shape[i] = FieldShape{Name: fs.Field, Min: fs.Min, Max: fs.Max}
	}

	return Prompt{System: systemInstruction, User: sb.String(), Shape: shape}, nil
}

func writeTaskInstructions(sb *strings.Builder, spec Spec) {
	switch spec.Kind {
	case KindPyramid:
		fmt.Fprintf(sb, "Generate a %d-level hierarchical pyramid for the topic: %q\n\n", spec.Sections, spec.Topic)
		sb.WriteString("Instructions:\n")
		sb.WriteString("1. Level 1 (base) represents the foundation; each higher level builds on the one below.\n")
		fmt.Fprintf(sb, "2. Level %d (top) represents the ultimate goal or peak achievement.\n", spec.Sections)
		sb.WriteString("3. Labels are concise section headers; the top label is 1-2 words, two words separated by <br>.\n")
		sb.WriteString("4. Descriptions explain each level and wrap 1-2 key words in <strong> tags.\n")
		sb.WriteString("5. Keep a consistent, logical flow between levels.\n")
	case KindFunnel:
		fmt.Fprintf(sb, "Generate a %d-stage funnel diagram for the topic: %q\n\n", spec.Sections, spec.Topic)
		sb.WriteString("Instructions:\n")
		sb.WriteString("1. Stage 1 (top, widest) is the broadest or initial stage; each stage narrows toward conversion.\n")
		fmt.Fprintf(sb, "2. Stage %d (bottom, narrowest) is the final outcome.\n", spec.Sections)
		sb.WriteString("3. Stage names are short labels, not sentences (e.g. Awareness, Qualification, Conversion).\n")
		sb.WriteString("4. Each stage has exactly 3 bullets describing key actions or characteristics,\n")
		sb.WriteString("   each wrapping 1-2 key words in <strong> tags.\n")
	case KindCircles:
		fmt.Fprintf(sb, "Generate content for a %d-circle concentric circles diagram about: %q\n\n", spec.Sections, spec.Topic)
		sb.WriteString("Instructions:\n")
		sb.WriteString("1. Circle 1 (core) is the most fundamental concept; each outer circle broadens the scope.\n")
		fmt.Fprintf(sb, "2. Circle %d (outermost) is the broadest or most encompassing concept.\n", spec.Sections)
		sb.WriteString("3. Circle labels are short, impactful phrases; only the core label may split with <br>.\n")
		sb.WriteString("4. Each circle's legend bullets give substantive, specific explanations; no filler.\n")
	}
}

func writeTargetLabels(sb *strings.Builder, spec Spec) {
	if len(spec.TargetLabels) == 0 {
		return
	}
	sb.WriteString("\nSuggested labels to consider (adapt freely if a better fit exists):\n")
	for i, label := range spec.TargetLabels {
		fmt.Fprintf(sb, "- %d: %s\n", i+1, label)
	}
}

func writeNarrativeContext(sb *strings.Builder, narrative []SlideContext) {
	if len(narrative) == 0 {
		return
	}
	sb.WriteString("\nPrevious slides in this presentation:\n")
	for _, slide := range narrative {
		if slide.SlideNumber > 0 {
			fmt.Fprintf(sb, "- Slide %d: %s\n", slide.SlideNumber, slide.Title)
		} else {
			fmt.Fprintf(sb, "- %s\n", slide.Title)
		}
		if slide.Summary != "" {
			fmt.Fprintf(sb, "  %s\n", slide.Summary)
		}
	}
	sb.WriteString("Stay consistent with the terminology established in these slides.\n")
}

func writeConstraints(sb *strings.Builder, fieldSpecs []constraints.Spec) {
	sb.WriteString("\nCharacter constraints (MUST follow exactly):\n")
	for _, fs := range fieldSpecs {
		fmt.Fprintf(sb, "- %s: %d-%d characters", fs.Field, fs.Min, fs.Max)
		if fs.Note != "" {
			fmt.Fprintf(sb, " (%s)", fs.Note)
		}
		sb.WriteString("\n")
	}
}

func writeOutputShape(sb *strings.Builder, fieldSpecs []constraints.Spec) {
	sb.WriteString("\nReturn ONLY valid JSON in this exact format:\n{\n")
	for i, fs := range fieldSpecs {
		fmt.Fprintf(sb, "  %q: \"...\"", fs.Field)
		if i < len(fieldSpecs)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
}
