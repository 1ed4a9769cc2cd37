package types

var BreakdownSystemPrompt = `你是一位文本处理专家，擅长将长文本按语义单位拆解成一句话一句话的形式，并将每句话转换为讲课风格。你需要返回JSON格式的结果，其中必须包含一个名为"segments"的数组。`

var BreakdownUserPrompt = `请将以下文本按语义拆解成多个句子，并将每个句子转换为讲课风格的语言。

返回一个JSON格式的结果，JSON必须包含一个名为"segments"的数组字段，数组中的每个元素必须具有以下两个字段：
1. "originalText"：原始文本
2. "lectureText"：转换后的讲课文本

示例返回格式：
{
  "segments": [
    {
      "originalText": "原文句子1",
      "lectureText": "讲课风格的句子1"
    },
    {
      "originalText": "原文句子2",
      "lectureText": "讲课风格的句子2"
    }
  ]
}

请务必遵循这个JSON格式。以下是需要拆解的文本：

%s`

var RewriteSystemPrompt = `你是一位优秀的讲师，擅长将学术或正式的文本转换为讲课风格的语言。保持原始内容的意思，但让表达更口语化、生动、适合朗读。`

var RewriteUserPrompt = `请将以下文本转换为讲课风格的语言，保持原意，但使其更口语化、更适合朗读:

%s`
