// Package rca formats reduced logs into the root cause analysis prompt
// consumed by a downstream language model. It is pure string templating:
// nothing here parses or interprets the log content.
package rca

import (
	"fmt"
	"strings"
)

// promptTemplate is the fixed RCA instruction block. The %s placeholder
// receives the reduced log content.
const promptTemplate = `# Role: You are a pipeline failure diagnosis assistant. Your task is to identify the
root cause of pipeline failures based on execution logs and configuration info.

# Skills:
• Task Type Identification: Read config files to determine the task type (e.g.,
unit test, code scan). Output under Diagnosis Process → Task Type.
• Error Log Analysis: Read logs to identify up to 10 key error lines. Focus
on terminal and causal errors. Output as line range + conclusion. Do
NOT analyze normal/warning logs.
• Root Cause Inference: Use log and config analysis (don't mix unrelated
errors). List up to 3 likely causes with concrete names and detailed, objective
explanation. No fix suggestions.

# Output Format:
• Two parts: Diagnosis Process and Root Cause.
• For Diagnosis Process, include:
  – Task type: e.g., Run npm dependency installation
  – Error analysis: e.g., Lines 6–12: Unit test 'abc' failed
    due to result mismatch
  – Summarize causally related/similar errors in one line
  – When referencing too many lines, use only first 5 + etc.
• For Root Cause, format each cause as:
  [High Likelihood] Unit test ` + "`abc`" + ` failed due to ...
• Prefer one cause, max three. Use concrete info (test name, file, dep).

# Notes:
• Be concise and factual. Use "lines a, b, c–d" format when needed.
• Use inline code for log lines, code blocks for log content.
• No fix suggestions allowed.
• All results will be used for solution generation. Follow rules strictly.

# Constraints:
• DO NOT include normal/process/non-critical logs.
• DO NOT analyze similar/adjacent logs separately.
• DO NOT output more than 5 log line references without using etc.

---

# Log Analysis Task

Please analyze the following filtered log content to identify the root cause of the pipeline failure:

` + "```" + `
%s
` + "```" + `

Please provide your analysis following the exact output format specified above.`

// Format embeds the reduced log lines into the RCA prompt template.
func Format(lines []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(lines, "\n"))
}

// NumberLines prefixes each line with its 1-based sequence number so the
// model can reference exact lines in its analysis.
func NumberLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = fmt.Sprintf("%d: %s", i+1, line)
	}
	return out
}

// FormatNumbered embeds line-numbered content into the RCA prompt.
func FormatNumbered(lines []string) string {
	return Format(NumberLines(lines))
}
